package app

import (
	"context"

	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/meter"
	"github.com/apops/apops/domain/workspace"
)

// Skip reasons reported by batch generation.
const (
	SkipAlreadyInvoiced = "already_invoiced"
	SkipMissingReading  = "missing_reading"
)

// Skip is one per-unit diagnostic from a generation batch.
type Skip struct {
	UnitID   string `json:"unitId"`
	UnitName string `json:"unitName"`
	Reason   string `json:"reason"`
}

// BatchResult reports what one generation run did.
type BatchResult struct {
	Month   string            `json:"month"`
	Created []invoice.Invoice `json:"created"`
	Skipped []Skip            `json:"skipped"`
}

// GenerateInvoices raises one invoice per active lease for the given
// month. Units already invoiced for the month are skipped, so the batch
// can be re-run safely. A unit without an electric reading is skipped
// unless settings allow invoicing without one, in which case the
// invoice carries the missingElectric flag and no electric line.
func (s *Service) GenerateInvoices(ctx context.Context, workspaceID, month string) (BatchResult, error) {
	if !meter.ValidMonth(month) {
		return BatchResult{}, validationf("invalid month %q, want YYYY-MM", month)
	}

	result := BatchResult{Month: month}
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		dueDate := state.Settings.DueDate(month)

		for _, l := range lease.Active(state.Leases) {
			if invoice.ExistsForUnitMonth(state.Invoices, l.UnitID, month) {
				result.Skipped = append(result.Skipped, Skip{
					UnitID:   l.UnitID,
					UnitName: state.UnitName(l.UnitID),
					Reason:   SkipAlreadyInvoiced,
				})
				continue
			}

			var reading *meter.Reading
			if r, ok := meter.Find(state.ElectricReadings, l.UnitID, month); ok {
				reading = &r
			}
			missing := reading == nil
			if missing && !state.Settings.AllowInvoiceWithoutElectric {
				result.Skipped = append(result.Skipped, Skip{
					UnitID:   l.UnitID,
					UnitName: state.UnitName(l.UnitID),
					Reason:   SkipMissingReading,
				})
				continue
			}

			lines := invoice.MonthlyLines(l, reading, state.Settings)
			inv := invoice.New(s.ids.New(), l, month, dueDate, lines, missing)
			state.Invoices = append(state.Invoices, inv)
			result.Created = append(result.Created, inv)
		}
		return nil
	})
	if err != nil {
		return BatchResult{}, err
	}

	s.logger.Info().
		Str("workspace", workspaceID).
		Str("month", month).
		Int("created", len(result.Created)).
		Int("skipped", len(result.Skipped)).
		Msg("invoice batch generated")
	return result, nil
}
