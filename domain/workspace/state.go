// Package workspace provides the full entity snapshot of one workspace.
//
// Every core operation is a pure transform: it deep-copies the current
// snapshot, mutates the copy, and hands the copy back. Callers holding
// the old snapshot never observe a partial update.
package workspace

import (
	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/maintenance"
	"github.com/apops/apops/domain/meter"
	"github.com/apops/apops/domain/payment"
	"github.com/apops/apops/domain/settings"
	"github.com/apops/apops/domain/tenant"
	"github.com/apops/apops/domain/unit"
)

// State is the complete data of one workspace. All entities belong to
// exactly one workspace; there are no cross-workspace references.
type State struct {
	Units            []unit.Unit          `json:"units"`
	Tenants          []tenant.Tenant      `json:"tenants"`
	Leases           []lease.Lease        `json:"leases"`
	ElectricReadings []meter.Reading      `json:"electricReadings"`
	Invoices         []invoice.Invoice    `json:"invoices"`
	Payments         []payment.Payment    `json:"payments"`
	Maintenance      []maintenance.Ticket `json:"maintenance"`
	Settings         settings.Settings    `json:"settings"`
}

// Empty returns the state a brand-new workspace starts with.
func Empty() State {
	return State{Settings: settings.Defaults()}
}

// Clone returns a deep copy of the state. Slices of value types copy by
// element; the only nested slices are invoice lines and vehicle plates.
func (s State) Clone() State {
	out := s

	out.Units = append([]unit.Unit(nil), s.Units...)
	out.Leases = append([]lease.Lease(nil), s.Leases...)
	out.ElectricReadings = append([]meter.Reading(nil), s.ElectricReadings...)
	out.Payments = append([]payment.Payment(nil), s.Payments...)
	out.Maintenance = append([]maintenance.Ticket(nil), s.Maintenance...)

	out.Tenants = append([]tenant.Tenant(nil), s.Tenants...)
	for i := range out.Tenants {
		out.Tenants[i].VehiclePlates = append([]string(nil), out.Tenants[i].VehiclePlates...)
	}

	out.Invoices = append([]invoice.Invoice(nil), s.Invoices...)
	for i := range out.Invoices {
		out.Invoices[i].Lines = append([]invoice.Line(nil), out.Invoices[i].Lines...)
	}

	return out
}

// UnitByID returns the index of the unit, or -1.
func (s State) UnitByID(id string) int {
	for i, u := range s.Units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// TenantByID returns the index of the tenant, or -1.
func (s State) TenantByID(id string) int {
	for i, t := range s.Tenants {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// LeaseByID returns the index of the lease, or -1.
func (s State) LeaseByID(id string) int {
	for i, l := range s.Leases {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// TenantForInvoice resolves the tenant an invoice belongs to via its
// lease. Returns -1 when the chain is broken (lease or tenant deleted),
// which callers treat as an integrity gap rather than an error.
func (s State) TenantForInvoice(inv invoice.Invoice) int {
	li := s.LeaseByID(inv.LeaseID)
	if li < 0 {
		return -1
	}
	return s.TenantByID(s.Leases[li].TenantID)
}

// UnitName returns the unit's display name, falling back to the raw id
// when the unit has been deleted.
func (s State) UnitName(unitID string) string {
	if i := s.UnitByID(unitID); i >= 0 {
		return s.Units[i].Name
	}
	return unitID
}
