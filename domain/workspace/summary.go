package workspace

import (
	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/unit"
)

// Summary holds the dashboard counters for one workspace.
type Summary struct {
	Units            int   `json:"units"`
	UnitsOccupied    int   `json:"unitsOccupied"`
	UnitsVacant      int   `json:"unitsVacant"`
	UnitsMaintenance int   `json:"unitsMaintenance"`
	Tenants          int   `json:"tenants"`
	ActiveLeases     int   `json:"activeLeases"`
	UnpaidInvoices   int   `json:"unpaidInvoices"`
	Outstanding      int64 `json:"outstanding"` // đ still owed across non-Paid invoices
	OpenTickets      int   `json:"openTickets"`
}

// Summarize computes dashboard counters. This is a PURE function.
func Summarize(s State) Summary {
	sum := Summary{
		Units:   len(s.Units),
		Tenants: len(s.Tenants),
	}

	for _, u := range s.Units {
		switch u.Status {
		case unit.StatusOccupied:
			sum.UnitsOccupied++
		case unit.StatusVacant:
			sum.UnitsVacant++
		case unit.StatusMaintenance:
			sum.UnitsMaintenance++
		}
	}

	for _, l := range s.Leases {
		if l.Status == lease.StatusActive {
			sum.ActiveLeases++
		}
	}

	for _, inv := range s.Invoices {
		if inv.Status == invoice.StatusUnpaid {
			sum.UnpaidInvoices++
		}
		if inv.Status != invoice.StatusPaid {
			sum.Outstanding += inv.Remaining
		}
	}

	for _, tk := range s.Maintenance {
		if tk.IsOpen() {
			sum.OpenTickets++
		}
	}

	return sum
}
