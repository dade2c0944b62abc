package app

import (
	"context"

	"github.com/apops/apops/domain/maintenance"
	"github.com/apops/apops/domain/workspace"
)

func validTicket(t maintenance.Ticket) error {
	if t.Description == "" {
		return validationf("ticket description must not be empty")
	}
	switch t.Priority {
	case maintenance.PriorityLow, maintenance.PriorityMedium, maintenance.PriorityHigh:
	default:
		return validationf("unknown ticket priority %q", t.Priority)
	}
	switch t.Status {
	case maintenance.StatusPending, maintenance.StatusInProgress, maintenance.StatusCompleted:
	default:
		return validationf("unknown ticket status %q", t.Status)
	}
	if t.RepairCost < 0 {
		return validationf("repair cost must not be negative")
	}
	return nil
}

// CreateTicket opens a maintenance ticket against a unit.
func (s *Service) CreateTicket(ctx context.Context, workspaceID string, t maintenance.Ticket) (maintenance.Ticket, error) {
	t.ID = s.ids.New()
	if t.Priority == "" {
		t.Priority = maintenance.PriorityMedium
	}
	if t.Status == "" {
		t.Status = maintenance.StatusPending
	}

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		if err := validTicket(t); err != nil {
			return err
		}
		if state.UnitByID(t.UnitID) < 0 {
			return notFound("unit", t.UnitID)
		}
		state.Maintenance = append(state.Maintenance, t)
		return nil
	})
	return t, err
}

// UpdateTicket edits a ticket in place.
func (s *Service) UpdateTicket(ctx context.Context, workspaceID string, t maintenance.Ticket) (maintenance.Ticket, error) {
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		idx := -1
		for i := range state.Maintenance {
			if state.Maintenance[i].ID == t.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return notFound("ticket", t.ID)
		}
		if err := validTicket(t); err != nil {
			return err
		}
		state.Maintenance[idx] = t
		return nil
	})
	return t, err
}

// DeleteTicket removes a ticket.
func (s *Service) DeleteTicket(ctx context.Context, workspaceID, ticketID string) error {
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		for i := range state.Maintenance {
			if state.Maintenance[i].ID == ticketID {
				state.Maintenance = append(state.Maintenance[:i], state.Maintenance[i+1:]...)
				return nil
			}
		}
		return notFound("ticket", ticketID)
	})
}

// ListTickets returns all maintenance tickets in the workspace.
func (s *Service) ListTickets(ctx context.Context, workspaceID string) ([]maintenance.Ticket, error) {
	var out []maintenance.Ticket
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Maintenance
		return nil
	})
	return out, err
}
