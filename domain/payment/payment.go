// Package payment provides the payment ledger entry value type.
package payment

// Method is how money was collected.
type Method string

const (
	MethodCash Method = "Cash"
	MethodBank Method = "Bank"
)

// Payment represents one collected amount (value type).
//
// The ledger is append-only history kept most-recent-first. Amount is
// what was actually collected, which may exceed what was applied to the
// invoice (the surplus goes to the tenant's credit balance). Entries
// may outlive their invoice: deleting an invoice orphans its payments
// rather than cascading, so InvoiceID can dangle.
type Payment struct {
	ID        string `json:"id"`
	InvoiceID string `json:"invoiceId,omitempty"`
	TenantID  string `json:"tenantId,omitempty"` // set on credit entries
	Date      string `json:"date"`               // YYYY-MM-DD
	Amount    int64  `json:"amount"`
	Method    Method `json:"method"`
	Note      string `json:"note"`
	// FromCredit marks synthetic entries: credit top-ups and
	// credit-balance applications kept for audit continuity.
	FromCredit bool `json:"isCreditTopUp,omitempty"`
}

// ValidMethod reports whether m is a known collection method.
func ValidMethod(m Method) bool {
	return m == MethodCash || m == MethodBank
}

// FindByID returns the index of the payment with the given id, or -1.
func FindByID(payments []Payment, id string) int {
	for i, p := range payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}
