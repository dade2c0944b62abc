// Package memory provides in-memory implementations of the store ports,
// used in tests and for ephemeral single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
)

// WorkspaceStore keeps workspace snapshots in a map. All methods are
// safe for concurrent use. States are deep-copied on both Load and
// Save so callers can never mutate the stored snapshot in place.
type WorkspaceStore struct {
	mu     sync.RWMutex
	states map[string]workspace.State
}

var _ ports.WorkspaceStore = (*WorkspaceStore)(nil)

func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{states: make(map[string]workspace.State)}
}

func (s *WorkspaceStore) Load(_ context.Context, workspaceID string) (workspace.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[workspaceID]
	if !ok {
		return workspace.State{}, ports.ErrWorkspaceNotFound
	}
	return st.Clone(), nil
}

func (s *WorkspaceStore) Save(_ context.Context, workspaceID string, state workspace.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[workspaceID] = state.Clone()
	return nil
}

func (s *WorkspaceStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.states))
	for id := range s.states {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
