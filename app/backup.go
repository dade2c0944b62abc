package app

import (
	"context"

	"github.com/apops/apops/domain/workspace"
)

// Export returns the full workspace snapshot for backup.
func (s *Service) Export(ctx context.Context, workspaceID string) (workspace.State, error) {
	var out workspace.State
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = state
		return nil
	})
	return out, err
}

// Import replaces the workspace with a previously exported snapshot.
// The snapshot's settings are validated; the entity lists are taken as
// given, since a backup may legitimately contain orphaned references.
func (s *Service) Import(ctx context.Context, workspaceID string, snapshot workspace.State) error {
	if err := snapshot.Settings.Validate(); err != nil {
		return validationf("backup has invalid settings: %v", err)
	}

	l := s.lock(workspaceID)
	l.Lock()
	defer l.Unlock()

	if err := s.store.Save(ctx, workspaceID, snapshot); err != nil {
		return err
	}
	s.logger.Info().Str("workspace", workspaceID).Msg("workspace restored from backup")
	return nil
}
