// Package lease provides lease value types and registry rules.
//
// The registry invariant: at most one Active lease per unit at any
// time. Status only ever moves Active -> Ended.
package lease

import (
	"fmt"
	"time"
)

// Status represents lease state.
type Status string

const (
	StatusActive Status = "Active"
	StatusEnded  Status = "Ended"
)

const dateLayout = "2006-01-02"

// Lease represents a signed rental agreement (value type).
type Lease struct {
	ID          string `json:"id"`
	UnitID      string `json:"unitId"`
	TenantID    string `json:"tenantId"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD
	Months      int    `json:"months"`
	EndDate     string `json:"endDate"` // derived, YYYY-MM-DD
	Deposit     int64  `json:"deposit"`
	RentMonthly int64  `json:"rentMonthly"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Status      Status `json:"status"`
}

// IsActive returns true while the lease is in force.
func (l Lease) IsActive() bool {
	return l.Status == StatusActive
}

// EndDate derives the lease end date by adding the term to the start
// date. Overflowing days normalize forward (Jan 31 + 1 month rolls into
// March), matching calendar addition.
func EndDate(startDate string, months int) (string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return "", fmt.Errorf("parse start date: %w", err)
	}
	return start.AddDate(0, months, 0).Format(dateLayout), nil
}

// Validate checks the fields of a lease before it enters the registry.
func (l Lease) Validate() error {
	if l.UnitID == "" {
		return fmt.Errorf("lease requires a unit")
	}
	if l.TenantID == "" {
		return fmt.Errorf("lease requires a tenant")
	}
	if _, err := time.Parse(dateLayout, l.StartDate); err != nil {
		return fmt.Errorf("invalid start date %q", l.StartDate)
	}
	if l.Months <= 0 {
		return fmt.Errorf("lease term must be at least one month")
	}
	if l.RentMonthly < 0 || l.Deposit < 0 {
		return fmt.Errorf("rent and deposit must not be negative")
	}
	if l.Adults < 0 || l.Children < 0 {
		return fmt.Errorf("occupant counts must not be negative")
	}
	if l.Status != StatusActive && l.Status != StatusEnded {
		return fmt.Errorf("unknown lease status %q", l.Status)
	}
	return nil
}

// Active filters a lease list down to the leases currently in force.
func Active(leases []Lease) []Lease {
	var out []Lease
	for _, l := range leases {
		if l.IsActive() {
			out = append(out, l)
		}
	}
	return out
}

// ActiveForUnit returns the Active lease on a unit, ignoring the lease
// with id exclude (used when editing a lease in place). The second
// return is false when the unit has no other Active lease.
func ActiveForUnit(leases []Lease, unitID, exclude string) (Lease, bool) {
	for _, l := range leases {
		if l.UnitID == unitID && l.IsActive() && l.ID != exclude {
			return l, true
		}
	}
	return Lease{}, false
}
