package app

import (
	"context"

	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/workspace"
)

// ListInvoices returns the workspace's invoices, newest month first is
// not guaranteed; order is storage order. When month is non-empty only
// that month is returned. Statuses are resolved to their display form,
// so an unpaid invoice past its due date reads as Overdue.
func (s *Service) ListInvoices(ctx context.Context, workspaceID, month string) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		now := s.clock.Now()
		for _, inv := range state.Invoices {
			if month != "" && inv.Month != month {
				continue
			}
			inv.Status = invoice.DisplayStatus(inv, now)
			out = append(out, inv)
		}
		return nil
	})
	return out, err
}

// GetInvoice returns one invoice with its display status resolved.
func (s *Service) GetInvoice(ctx context.Context, workspaceID, invoiceID string) (invoice.Invoice, error) {
	var out invoice.Invoice
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		i := invoice.FindByID(state.Invoices, invoiceID)
		if i < 0 {
			return notFound("invoice", invoiceID)
		}
		out = state.Invoices[i]
		out.Status = invoice.DisplayStatus(out, s.clock.Now())
		return nil
	})
	return out, err
}

// DeleteInvoice removes an invoice. Payments recorded against it are
// kept: the ledger is audit history, so deletion orphans them rather
// than cascading.
func (s *Service) DeleteInvoice(ctx context.Context, workspaceID, invoiceID string) error {
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		i := invoice.FindByID(state.Invoices, invoiceID)
		if i < 0 {
			return notFound("invoice", invoiceID)
		}
		state.Invoices = append(state.Invoices[:i], state.Invoices[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("workspace", workspaceID).Str("invoice", invoiceID).Msg("invoice deleted")
	return nil
}

// Reminder builds the payment-reminder text for an invoice. A broken
// lease or tenant reference falls back to generic wording rather than
// failing, since reminders are read-only.
func (s *Service) Reminder(ctx context.Context, workspaceID, invoiceID string, kind invoice.ReminderKind) (string, error) {
	var out string
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		i := invoice.FindByID(state.Invoices, invoiceID)
		if i < 0 {
			return notFound("invoice", invoiceID)
		}
		inv := state.Invoices[i]

		tenantName := "tenant"
		if ti := state.TenantForInvoice(inv); ti >= 0 {
			tenantName = state.Tenants[ti].FullName
		}

		out = invoice.ReminderText(inv, kind, tenantName, state.UnitName(inv.UnitID), state.Settings)
		return nil
	})
	return out, err
}
