package app

import (
	"context"

	"github.com/apops/apops/domain/invoice"
	"github.com/apops/apops/domain/lease"
	"github.com/apops/apops/domain/unit"
	"github.com/apops/apops/domain/workspace"
)

// SignLeaseInput describes a new lease to sign.
type SignLeaseInput struct {
	UnitID      string `json:"unitId"`
	TenantID    string `json:"tenantId"`
	StartDate   string `json:"startDate"`
	Months      int    `json:"months"`
	Deposit     int64  `json:"deposit"`
	RentMonthly int64  `json:"rentMonthly"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	// CreateInvoice raises the signing invoice (deposit + first month
	// rent) immediately, dated to the lease start. It is exempt from
	// the missing-electric policy.
	CreateInvoice bool `json:"createInvoice"`
}

// SignLeaseResult is what signing produced.
type SignLeaseResult struct {
	Lease   lease.Lease      `json:"lease"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
}

// SignLease registers a new Active lease and flips the unit to
// Occupied. A unit can carry at most one Active lease.
func (s *Service) SignLease(ctx context.Context, workspaceID string, in SignLeaseInput) (SignLeaseResult, error) {
	var result SignLeaseResult
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		ui := state.UnitByID(in.UnitID)
		if ui < 0 {
			return notFound("unit", in.UnitID)
		}
		if state.TenantByID(in.TenantID) < 0 {
			return notFound("tenant", in.TenantID)
		}
		if other, taken := lease.ActiveForUnit(state.Leases, in.UnitID, ""); taken {
			return validationf("unit %s already has active lease %s", in.UnitID, other.ID)
		}

		endDate, err := lease.EndDate(in.StartDate, in.Months)
		if err != nil {
			return validationf("invalid start date %q", in.StartDate)
		}

		l := lease.Lease{
			ID:          s.ids.New(),
			UnitID:      in.UnitID,
			TenantID:    in.TenantID,
			StartDate:   in.StartDate,
			Months:      in.Months,
			EndDate:     endDate,
			Deposit:     in.Deposit,
			RentMonthly: in.RentMonthly,
			Adults:      in.Adults,
			Children:    in.Children,
			Status:      lease.StatusActive,
		}
		if err := l.Validate(); err != nil {
			return ValidationError{Msg: err.Error()}
		}

		state.Leases = append(state.Leases, l)
		state.Units[ui].Status = unit.StatusOccupied
		result.Lease = l

		if in.CreateInvoice {
			inv := invoice.New(s.ids.New(), l, l.StartDate[:7], l.StartDate, invoice.SigningLines(l), false)
			state.Invoices = append(state.Invoices, inv)
			result.Invoice = &inv
		}
		return nil
	})
	if err != nil {
		return SignLeaseResult{}, err
	}

	s.logger.Info().
		Str("workspace", workspaceID).
		Str("lease", result.Lease.ID).
		Str("unit", result.Lease.UnitID).
		Bool("signing_invoice", result.Invoice != nil).
		Msg("lease signed")
	return result, nil
}

// UpdateLease edits a lease in place. The end date is re-derived and
// the one-active-lease-per-unit rule re-checked. Occupancy is recomputed
// for every unit the edit touches, so ending a lease through an edit
// frees its unit just like EndLease does. Ended stays terminal: an
// edit cannot bring a lease back to Active.
func (s *Service) UpdateLease(ctx context.Context, workspaceID string, l lease.Lease) (lease.Lease, error) {
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		li := state.LeaseByID(l.ID)
		if li < 0 {
			return notFound("lease", l.ID)
		}
		prev := state.Leases[li]

		if state.UnitByID(l.UnitID) < 0 {
			return notFound("unit", l.UnitID)
		}
		if state.TenantByID(l.TenantID) < 0 {
			return notFound("tenant", l.TenantID)
		}
		if !prev.IsActive() && l.IsActive() {
			return validationf("lease %s has ended and cannot be reactivated", l.ID)
		}
		if l.IsActive() {
			if other, taken := lease.ActiveForUnit(state.Leases, l.UnitID, l.ID); taken {
				return validationf("unit %s already has active lease %s", l.UnitID, other.ID)
			}
		}

		endDate, err := lease.EndDate(l.StartDate, l.Months)
		if err != nil {
			return validationf("invalid start date %q", l.StartDate)
		}
		l.EndDate = endDate
		if err := l.Validate(); err != nil {
			return ValidationError{Msg: err.Error()}
		}

		state.Leases[li] = l
		if prev.UnitID != l.UnitID || prev.IsActive() != l.IsActive() {
			refreshOccupancy(state, prev.UnitID)
			refreshOccupancy(state, l.UnitID)
		}
		return nil
	})
	return l, err
}

// refreshOccupancy derives a unit's status from whether it still
// carries an Active lease.
func refreshOccupancy(state *workspace.State, unitID string) {
	ui := state.UnitByID(unitID)
	if ui < 0 {
		return
	}
	if _, active := lease.ActiveForUnit(state.Leases, unitID, ""); active {
		state.Units[ui].Status = unit.StatusOccupied
	} else {
		state.Units[ui].Status = unit.StatusVacant
	}
}

// EndLease marks an Active lease Ended and frees its unit. Ended is
// terminal.
func (s *Service) EndLease(ctx context.Context, workspaceID, leaseID string) error {
	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		li := state.LeaseByID(leaseID)
		if li < 0 {
			return notFound("lease", leaseID)
		}
		if !state.Leases[li].IsActive() {
			return validationf("lease %s has already ended", leaseID)
		}

		state.Leases[li].Status = lease.StatusEnded
		if ui := state.UnitByID(state.Leases[li].UnitID); ui >= 0 {
			state.Units[ui].Status = unit.StatusVacant
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("workspace", workspaceID).Str("lease", leaseID).Msg("lease ended")
	return nil
}

// DeleteLease removes a lease record. Invoices that reference it stay
// behind; renderers tolerate the dangling reference.
func (s *Service) DeleteLease(ctx context.Context, workspaceID, leaseID string) error {
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		li := state.LeaseByID(leaseID)
		if li < 0 {
			return notFound("lease", leaseID)
		}
		l := state.Leases[li]
		if l.IsActive() {
			if ui := state.UnitByID(l.UnitID); ui >= 0 {
				state.Units[ui].Status = unit.StatusVacant
			}
		}
		state.Leases = append(state.Leases[:li], state.Leases[li+1:]...)
		return nil
	})
}

// ListLeases returns all leases in the workspace.
func (s *Service) ListLeases(ctx context.Context, workspaceID string) ([]lease.Lease, error) {
	var out []lease.Lease
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Leases
		return nil
	})
	return out, err
}
