package app

import (
	"context"

	"github.com/apops/apops/domain/meter"
	"github.com/apops/apops/domain/workspace"
)

// CreateReading records an electric meter reading. One reading per
// (unit, month); kWh is derived from the counter values.
func (s *Service) CreateReading(ctx context.Context, workspaceID string, r meter.Reading) (meter.Reading, error) {
	r.ID = s.ids.New()
	r.KWH = r.EndValue - r.StartValue

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		if err := r.Validate(); err != nil {
			return ValidationError{Msg: err.Error()}
		}
		if state.UnitByID(r.UnitID) < 0 {
			return notFound("unit", r.UnitID)
		}
		if _, exists := meter.Find(state.ElectricReadings, r.UnitID, r.Month); exists {
			return validationf("unit %s already has a reading for %s", r.UnitID, r.Month)
		}
		state.ElectricReadings = append(state.ElectricReadings, r)
		return nil
	})
	return r, err
}

// UpdateReading edits a reading in place, re-deriving kWh and
// re-checking the one-per-unit-per-month rule.
func (s *Service) UpdateReading(ctx context.Context, workspaceID string, r meter.Reading) (meter.Reading, error) {
	r.KWH = r.EndValue - r.StartValue

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		idx := -1
		for i := range state.ElectricReadings {
			if state.ElectricReadings[i].ID == r.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return notFound("reading", r.ID)
		}

		if err := r.Validate(); err != nil {
			return ValidationError{Msg: err.Error()}
		}
		if state.UnitByID(r.UnitID) < 0 {
			return notFound("unit", r.UnitID)
		}
		if dup, exists := meter.Find(state.ElectricReadings, r.UnitID, r.Month); exists && dup.ID != r.ID {
			return validationf("unit %s already has a reading for %s", r.UnitID, r.Month)
		}

		state.ElectricReadings[idx] = r
		return nil
	})
	return r, err
}

// DeleteReading removes a reading. Invoices already generated from it
// are untouched.
func (s *Service) DeleteReading(ctx context.Context, workspaceID, readingID string) error {
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		for i := range state.ElectricReadings {
			if state.ElectricReadings[i].ID == readingID {
				state.ElectricReadings = append(state.ElectricReadings[:i], state.ElectricReadings[i+1:]...)
				return nil
			}
		}
		return notFound("reading", readingID)
	})
}

// ListReadings returns readings, optionally filtered to one month.
func (s *Service) ListReadings(ctx context.Context, workspaceID, month string) ([]meter.Reading, error) {
	var out []meter.Reading
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		for _, r := range state.ElectricReadings {
			if month != "" && r.Month != month {
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}
