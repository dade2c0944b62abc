// Package meter provides electric meter readings and their invariants.
package meter

import (
	"fmt"
	"time"
)

// Reading represents one electric meter reading for a unit and month.
// KWH is derived: end value minus start value.
//
// Invariants: EndValue >= StartValue, and at most one reading exists
// per (unit, month) pair.
type Reading struct {
	ID         string `json:"id"`
	UnitID     string `json:"unitId"`
	Month      string `json:"month"` // YYYY-MM
	StartValue int64  `json:"startValue"`
	EndValue   int64  `json:"endValue"`
	KWH        int64  `json:"kwh"`
}

// ValidMonth reports whether s is a well-formed "YYYY-MM" month key.
func ValidMonth(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// Validate checks the reading fields. It does not check the
// one-per-unit-per-month invariant; that needs the full collection.
func (r Reading) Validate() error {
	if r.UnitID == "" {
		return fmt.Errorf("reading requires a unit")
	}
	if !ValidMonth(r.Month) {
		return fmt.Errorf("invalid month %q, want YYYY-MM", r.Month)
	}
	if r.StartValue < 0 {
		return fmt.Errorf("start value must not be negative")
	}
	if r.EndValue < r.StartValue {
		return fmt.Errorf("end value %d is less than start value %d", r.EndValue, r.StartValue)
	}
	return nil
}

// Find returns the reading for (unitID, month), if any.
func Find(readings []Reading, unitID, month string) (Reading, bool) {
	for _, r := range readings {
		if r.UnitID == unitID && r.Month == month {
			return r, true
		}
	}
	return Reading{}, false
}
