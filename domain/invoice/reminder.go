package invoice

import (
	"fmt"
	"strings"

	"github.com/apops/apops/domain/money"
	"github.com/apops/apops/domain/settings"
)

// ReminderKind selects the closing line of a payment reminder message.
type ReminderKind string

const (
	ReminderBeforeDue ReminderKind = "before"
	ReminderDueToday  ReminderKind = "today"
	ReminderOverdue   ReminderKind = "overdue"
	ReminderPartial   ReminderKind = "partial"
)

// ReminderText renders a copy-paste payment reminder for an invoice,
// including the workspace's bank transfer details. This is a PURE
// function.
func ReminderText(inv Invoice, kind ReminderKind, tenantName, unitName string, s settings.Settings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s, this is the %s charge notice for unit %s:\n", tenantName, inv.Month, unitName)
	fmt.Fprintf(&b, "Total: %s\n", money.Format(inv.Total))
	fmt.Fprintf(&b, "Paid: %s\n", money.Format(inv.Paid))
	fmt.Fprintf(&b, "Remaining: %s\n", money.Format(inv.Remaining))
	fmt.Fprintf(&b, "Due date: %s\n\n", inv.DueDate)
	fmt.Fprintf(&b, "Account number: %s\n", s.BankAccount)
	fmt.Fprintf(&b, "Bank: %s\n", s.BankName)
	fmt.Fprintf(&b, "Account holder: %s\n\n", s.BankOwner)

	switch kind {
	case ReminderDueToday:
		b.WriteString("Today is the final payment date, please transfer when you can!")
	case ReminderOverdue:
		b.WriteString("This charge is now overdue. Please settle it today.")
	case ReminderPartial:
		b.WriteString("Part of the charge is still outstanding, please top up the rest soon.")
	default:
		b.WriteString("Please pay on time. Thank you!")
	}

	return b.String()
}
