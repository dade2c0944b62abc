package app

import (
	"context"

	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/unit"
	"github.com/apops/apops/domain/workspace"
)

// CreateUnit adds a rentable unit, Vacant unless stated otherwise.
func (s *Service) CreateUnit(ctx context.Context, workspaceID string, u unit.Unit) (unit.Unit, error) {
	if u.Name == "" {
		return unit.Unit{}, validationf("unit name must not be empty")
	}
	if u.BaseRent < 0 {
		return unit.Unit{}, validationf("base rent must not be negative")
	}
	u.ID = s.ids.New()
	if u.Status == "" {
		u.Status = unit.StatusVacant
	}

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		state.Units = append(state.Units, u)
		return nil
	})
	return u, err
}

// UpdateUnit edits a unit in place.
func (s *Service) UpdateUnit(ctx context.Context, workspaceID string, u unit.Unit) (unit.Unit, error) {
	if u.Name == "" {
		return unit.Unit{}, validationf("unit name must not be empty")
	}
	if u.BaseRent < 0 {
		return unit.Unit{}, validationf("base rent must not be negative")
	}

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		ui := state.UnitByID(u.ID)
		if ui < 0 {
			return notFound("unit", u.ID)
		}
		state.Units[ui] = u
		return nil
	})
	return u, err
}

// DeleteUnit removes a unit. A unit with an Active lease cannot go.
func (s *Service) DeleteUnit(ctx context.Context, workspaceID, unitID string) error {
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		ui := state.UnitByID(unitID)
		if ui < 0 {
			return notFound("unit", unitID)
		}
		if other, taken := lease.ActiveForUnit(state.Leases, unitID, ""); taken {
			return validationf("unit %s has active lease %s; end it first", unitID, other.ID)
		}
		state.Units = append(state.Units[:ui], state.Units[ui+1:]...)
		return nil
	})
}

// ListUnits returns all units in the workspace.
func (s *Service) ListUnits(ctx context.Context, workspaceID string) ([]unit.Unit, error) {
	var out []unit.Unit
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Units
		return nil
	})
	return out, err
}
