package app

import (
	"context"

	"github.com/apops/apops/domain/settings"
	"github.com/apops/apops/domain/workspace"
)

// GetSettings returns the workspace's tariff and policy values.
func (s *Service) GetSettings(ctx context.Context, workspaceID string) (settings.Settings, error) {
	var out settings.Settings
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state.Settings
		return nil
	})
	return out, err
}

// UpdateSettings replaces the workspace settings. Already-generated
// invoices keep the prices they were generated with.
func (s *Service) UpdateSettings(ctx context.Context, workspaceID string, next settings.Settings) error {
	if err := next.Validate(); err != nil {
		return ValidationError{Msg: err.Error()}
	}
	return s.update(ctx, workspaceID, func(state *workspace.State) error {
		state.Settings = next
		return nil
	})
}
