package invoice_test

import (
	"strings"
	"testing"

	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/settings"
)

func TestReminderText(t *testing.T) {
	inv := invoice.Invoice{
		Month:     "2024-03",
		DueDate:   "2024-03-05",
		Total:     5700000,
		Paid:      2000000,
		Remaining: 3700000,
	}
	s := settings.Defaults()
	s.BankName = "VCB"
	s.BankAccount = "0123456789"
	s.BankOwner = "Nguyen Van A"

	text := invoice.ReminderText(inv, invoice.ReminderOverdue, "Binh", "P201", s)

	for _, want := range []string{
		"Binh", "P201", "2024-03",
		"5,700,000đ", "2,000,000đ", "3,700,000đ",
		"2024-03-05", "VCB", "0123456789", "Nguyen Van A",
		"overdue",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("reminder missing %q:\n%s", want, text)
		}
	}
}

func TestReminderText_Closings(t *testing.T) {
	inv := invoice.Invoice{Month: "2024-03"}
	s := settings.Defaults()

	kinds := map[invoice.ReminderKind]string{
		invoice.ReminderBeforeDue: "pay on time",
		invoice.ReminderDueToday:  "final payment date",
		invoice.ReminderOverdue:   "overdue",
		invoice.ReminderPartial:   "still outstanding",
	}

	for kind, fragment := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			text := invoice.ReminderText(inv, kind, "A", "B", s)
			if !strings.Contains(text, fragment) {
				t.Errorf("reminder %s missing %q", kind, fragment)
			}
		})
	}
}
