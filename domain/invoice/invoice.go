// Package invoice provides invoice value types and the pure arithmetic
// behind generation and payment reconciliation.
//
// Invariants maintained here: Total == sum of line amounts, and
// Remaining == max(0, Total - Paid). Status is derived from the paid
// amounts except Overdue, which is a date-driven display status and is
// never stored.
package invoice

import (
	"fmt"
	"time"

	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/meter"
	"github.com/apops/apops/domain/money"
	"github.com/apops/apops/domain/settings"
)

// Status represents the payment state of an invoice.
type Status string

const (
	StatusUnpaid  Status = "Unpaid"
	StatusPartial Status = "Partial"
	StatusPaid    Status = "Paid"
	// StatusOverdue is computed at display time only; the engine never
	// writes it into a stored invoice.
	StatusOverdue Status = "Overdue"
)

// Line is one itemized charge on an invoice.
type Line struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Invoice represents one month's charges for a lease (value type).
type Invoice struct {
	ID              string `json:"id"`
	UnitID          string `json:"unitId"`
	LeaseID         string `json:"leaseId"`
	Month           string `json:"month"` // YYYY-MM
	DueDate         string `json:"dueDate"`
	Lines           []Line `json:"lines"`
	Total           int64  `json:"total"`
	Paid            int64  `json:"paid"`
	Remaining       int64  `json:"remaining"`
	Status          Status `json:"status"`
	MissingElectric bool   `json:"missingElectric,omitempty"`
}

// Total sums line amounts. This is a PURE function.
func Total(lines []Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Amount
	}
	return sum
}

// MonthlyLines builds the charge lines for one lease-month in fixed
// order: rent, water (adults), water (children), living fee, and
// electric when a reading is present. This is a PURE function.
func MonthlyLines(l lease.Lease, reading *meter.Reading, s settings.Settings) []Line {
	lines := []Line{
		{Label: "Rent", Amount: l.RentMonthly},
		{
			Label:  fmt.Sprintf("Water (adults: %d x %s)", l.Adults, money.Format(s.WaterAdultPrice)),
			Amount: int64(l.Adults) * s.WaterAdultPrice,
		},
		{
			Label:  fmt.Sprintf("Water (children: %d x %s)", l.Children, money.Format(s.WaterChildPrice)),
			Amount: int64(l.Children) * s.WaterChildPrice,
		},
		{
			Label:  fmt.Sprintf("Living fee (adults: %d x %s)", l.Adults, money.Format(s.LivingFeePerAdult)),
			Amount: int64(l.Adults) * s.LivingFeePerAdult,
		},
	}

	if reading != nil {
		lines = append(lines, Line{
			Label:  fmt.Sprintf("Electric (%d kWh x %s)", reading.KWH, money.Format(s.ElectricityPrice)),
			Amount: reading.KWH * s.ElectricityPrice,
		})
	}

	return lines
}

// SigningLines builds the two-line initial invoice raised when a lease
// is signed with immediate invoicing: deposit plus the first month's
// rent. This is a PURE function.
func SigningLines(l lease.Lease) []Line {
	return []Line{
		{Label: "Deposit", Amount: l.Deposit},
		{Label: "First month rent", Amount: l.RentMonthly},
	}
}

// New assembles an unpaid invoice from its lines.
func New(id string, l lease.Lease, month, dueDate string, lines []Line, missingElectric bool) Invoice {
	total := Total(lines)
	return Invoice{
		ID:              id,
		UnitID:          l.UnitID,
		LeaseID:         l.ID,
		Month:           month,
		DueDate:         dueDate,
		Lines:           lines,
		Total:           total,
		Paid:            0,
		Remaining:       total,
		Status:          StatusUnpaid,
		MissingElectric: missingElectric,
	}
}

// ApplyPayment applies a collected amount to the invoice and returns the
// updated invoice, the portion applied, and the surplus (>= 0) that the
// caller must credit to the tenant. The applied portion is capped at
// the invoice's remaining balance. This is a PURE function.
func ApplyPayment(inv Invoice, amount int64) (updated Invoice, applied, surplus int64) {
	applied = amount
	if applied > inv.Remaining {
		applied = inv.Remaining
	}
	surplus = amount - applied

	inv.Paid += applied
	inv.Remaining = inv.Total - inv.Paid
	if inv.Remaining < 0 {
		inv.Remaining = 0
	}

	switch {
	case inv.Remaining <= 0:
		inv.Status = StatusPaid
	case inv.Paid > 0:
		inv.Status = StatusPartial
	}
	// Otherwise the status is left as it was (Unpaid).

	return inv, applied, surplus
}

// ReversePayment undoes a previously recorded payment amount. The
// reversal is capped at the invoice's paid total, which defends against
// paid having been adjusted down since the payment was recorded.
// This is a PURE function.
func ReversePayment(inv Invoice, amount int64) Invoice {
	reversal := amount
	if reversal > inv.Paid {
		reversal = inv.Paid
	}

	inv.Paid -= reversal
	inv.Remaining = inv.Total - inv.Paid
	if inv.Remaining < 0 {
		inv.Remaining = 0
	}

	switch {
	case inv.Paid <= 0:
		inv.Status = StatusUnpaid
	case inv.Remaining > 0:
		inv.Status = StatusPartial
	default:
		inv.Status = StatusPaid
	}

	return inv
}

// DisplayStatus returns the status to show for an invoice at a point in
// time: Overdue when the due date has passed with a balance remaining,
// the stored status otherwise. This is a PURE function.
func DisplayStatus(inv Invoice, now time.Time) Status {
	if inv.Status == StatusPaid || inv.Remaining <= 0 {
		return inv.Status
	}
	// ISO dates compare lexicographically.
	if inv.DueDate != "" && now.Format("2006-01-02") > inv.DueDate {
		return StatusOverdue
	}
	return inv.Status
}

// ExistsForUnitMonth reports whether the collection already holds an
// invoice for (unitID, month). Batch generation uses this for its
// per-unit-per-month idempotence.
func ExistsForUnitMonth(invoices []Invoice, unitID, month string) bool {
	for _, inv := range invoices {
		if inv.UnitID == unitID && inv.Month == month {
			return true
		}
	}
	return false
}

// FindByID returns the index of the invoice with the given id, or -1.
func FindByID(invoices []Invoice, id string) int {
	for i, inv := range invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}
