package app

import (
	"context"

	"github.com/apops/apops/domain/tenant"
	"github.com/apops/apops/domain/workspace"
)

// CreateTenant registers a renter. Credit balance always starts at
// zero; it only moves through payments and top-ups.
func (s *Service) CreateTenant(ctx context.Context, workspaceID string, t tenant.Tenant) (tenant.Tenant, error) {
	if t.FullName == "" {
		return tenant.Tenant{}, validationf("tenant name must not be empty")
	}
	t.ID = s.ids.New()
	t.CreditBalance = 0

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		state.Tenants = append(state.Tenants, t)
		return nil
	})
	return t, err
}

// UpdateTenant edits tenant identity fields. The credit balance is
// preserved from the stored record, never taken from the input.
func (s *Service) UpdateTenant(ctx context.Context, workspaceID string, t tenant.Tenant) (tenant.Tenant, error) {
	if t.FullName == "" {
		return tenant.Tenant{}, validationf("tenant name must not be empty")
	}

	err := s.update(ctx, workspaceID, func(state *workspace.State) error {
		ti := state.TenantByID(t.ID)
		if ti < 0 {
			return notFound("tenant", t.ID)
		}
		t.CreditBalance = state.Tenants[ti].CreditBalance
		state.Tenants[ti] = t
		return nil
	})
	return t, err
}

// DeleteTenant removes a tenant. A tenant on an Active lease cannot go.
func (s *Service) DeleteTenant(ctx context.Context, workspaceID, tenantID string) error {
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		ti := state.TenantByID(tenantID)
		if ti < 0 {
			return notFound("tenant", tenantID)
		}
		for _, l := range state.Leases {
			if l.TenantID == tenantID && l.IsActive() {
				return validationf("tenant %s is on active lease %s; end it first", tenantID, l.ID)
			}
		}
		state.Tenants = append(state.Tenants[:ti], state.Tenants[ti+1:]...)
		return nil
	})
}

// ListTenants returns all tenants in the workspace.
func (s *Service) ListTenants(ctx context.Context, workspaceID string) ([]tenant.Tenant, error) {
	var out []tenant.Tenant
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Tenants
		return nil
	})
	return out, err
}
