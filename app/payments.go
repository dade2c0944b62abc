package app

import (
	"context"
	"time"

	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/payment"
	"github.com/apops/apops/domain/workspace"
)

// PaymentInput is the caller's view of a payment to record.
type PaymentInput struct {
	InvoiceID string         `json:"invoiceId"`
	Date      string         `json:"date"` // YYYY-MM-DD, defaults to today
	Amount    int64          `json:"amount"`
	Method    payment.Method `json:"method"`
	Note      string         `json:"note"`
}

// PaymentResult reports how a recorded payment was split between the
// invoice and the tenant's credit balance.
type PaymentResult struct {
	Payment payment.Payment `json:"payment"`
	Applied int64           `json:"applied"`
	Surplus int64           `json:"surplus"`
}

// RecordPayment applies a collected amount to an invoice. Only
// min(amount, remaining) reduces the invoice; any surplus is credited
// to the tenant's balance. The ledger entry stores the full collected
// amount either way, and the history is kept most-recent-first.
//
// When the invoice's lease or tenant no longer exists the surplus has
// nowhere to go; the payment still applies, and the dropped surplus is
// logged as an integrity gap.
func (s *Service) RecordPayment(ctx context.Context, workspaceID string, in PaymentInput) (PaymentResult, error) {
	if in.Amount <= 0 {
		return PaymentResult{}, validationf("payment amount must be positive, got %d", in.Amount)
	}
	if !payment.ValidMethod(in.Method) {
		return PaymentResult{}, validationf("unknown payment method %q", in.Method)
	}
	if in.Date == "" {
		in.Date = s.clock.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return PaymentResult{}, validationf("invalid payment date %q", in.Date)
	}

	var result PaymentResult
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		i := invoice.FindByID(state.Invoices, in.InvoiceID)
		if i < 0 {
			return notFound("invoice", in.InvoiceID)
		}

		updated, applied, surplus := invoice.ApplyPayment(state.Invoices[i], in.Amount)
		state.Invoices[i] = updated

		if surplus > 0 {
			if ti := state.TenantForInvoice(updated); ti >= 0 {
				state.Tenants[ti].CreditBalance += surplus
			} else {
				s.logger.Warn().
					Str("workspace", workspaceID).
					Str("invoice", in.InvoiceID).
					Int64("surplus", surplus).
					Msg("overpayment surplus dropped: invoice has no resolvable tenant")
			}
		}

		entry := payment.Payment{
			ID:        s.ids.New(),
			InvoiceID: in.InvoiceID,
			Date:      in.Date,
			Amount:    in.Amount,
			Method:    in.Method,
			Note:      in.Note,
		}
		state.Payments = append([]payment.Payment{entry}, state.Payments...)
		result = PaymentResult{Payment: entry, Applied: applied, Surplus: surplus}

		s.logger.Info().
			Str("workspace", workspaceID).
			Str("invoice", in.InvoiceID).
			Int64("amount", in.Amount).
			Int64("applied", applied).
			Int64("surplus", surplus).
			Msg("payment recorded")
		return nil
	})
	return result, err
}

// DeletePayment removes a ledger entry and backs its amount out of the
// invoice, capped at what the invoice shows as paid. Surplus that was
// credited to the tenant when the payment was recorded is NOT clawed
// back; reversing it could drive an already-spent balance negative, so
// the credit stands.
func (s *Service) DeletePayment(ctx context.Context, workspaceID, paymentID string) error {
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		pi := payment.FindByID(state.Payments, paymentID)
		if pi < 0 {
			return notFound("payment", paymentID)
		}
		p := state.Payments[pi]

		if ii := invoice.FindByID(state.Invoices, p.InvoiceID); ii >= 0 {
			state.Invoices[ii] = invoice.ReversePayment(state.Invoices[ii], p.Amount)
		}

		state.Payments = append(state.Payments[:pi], state.Payments[pi+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("workspace", workspaceID).Str("payment", paymentID).Msg("payment deleted")
	return nil
}

// ApplyCredit pays down an invoice from the tenant's credit balance,
// applying min(balance, remaining). A synthetic Cash entry flagged as
// credit keeps the ledger's audit trail complete.
func (s *Service) ApplyCredit(ctx context.Context, workspaceID, invoiceID string) (payment.Payment, error) {
	var entry payment.Payment
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		ii := invoice.FindByID(state.Invoices, invoiceID)
		if ii < 0 {
			return notFound("invoice", invoiceID)
		}
		inv := state.Invoices[ii]
		if inv.Remaining <= 0 {
			return validationf("invoice %s is already settled", invoiceID)
		}

		ti := state.TenantForInvoice(inv)
		if ti < 0 {
			return validationf("invoice %s has no resolvable tenant to draw credit from", invoiceID)
		}
		if state.Tenants[ti].CreditBalance <= 0 {
			return validationf("tenant %s has no credit balance", state.Tenants[ti].ID)
		}

		amount := state.Tenants[ti].CreditBalance
		if amount > inv.Remaining {
			amount = inv.Remaining
		}

		updated, _, _ := invoice.ApplyPayment(inv, amount)
		state.Invoices[ii] = updated
		state.Tenants[ti].CreditBalance -= amount

		entry = payment.Payment{
			ID:         s.ids.New(),
			InvoiceID:  invoiceID,
			TenantID:   state.Tenants[ti].ID,
			Date:       s.clock.Now().Format("2006-01-02"),
			Amount:     amount,
			Method:     payment.MethodCash,
			Note:       "Applied credit balance",
			FromCredit: true,
		}
		state.Payments = append([]payment.Payment{entry}, state.Payments...)

		s.logger.Info().
			Str("workspace", workspaceID).
			Str("invoice", invoiceID).
			Str("tenant", entry.TenantID).
			Int64("amount", amount).
			Msg("credit applied to invoice")
		return nil
	})
	return entry, err
}

// TopUpCredit adds pre-paid funds to a tenant's credit balance and
// records a matching ledger entry for audit.
func (s *Service) TopUpCredit(ctx context.Context, workspaceID, tenantID string, amount int64, method payment.Method, note string) (payment.Payment, error) {
	if amount <= 0 {
		return payment.Payment{}, validationf("top-up amount must be positive, got %d", amount)
	}
	if !payment.ValidMethod(method) {
		return payment.Payment{}, validationf("unknown payment method %q", method)
	}

	var entry payment.Payment
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		ti := state.TenantByID(tenantID)
		if ti < 0 {
			return notFound("tenant", tenantID)
		}
		state.Tenants[ti].CreditBalance += amount

		entry = payment.Payment{
			ID:         s.ids.New(),
			TenantID:   tenantID,
			Date:       s.clock.Now().Format("2006-01-02"),
			Amount:     amount,
			Method:     method,
			Note:       note,
			FromCredit: true,
		}
		state.Payments = append([]payment.Payment{entry}, state.Payments...)
		return nil
	})
	return entry, err
}

// ListPayments returns the ledger, most recent first.
func (s *Service) ListPayments(ctx context.Context, workspaceID string) ([]payment.Payment, error) {
	var out []payment.Payment
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Payments
		return nil
	})
	return out, err
}
