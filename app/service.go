// Package app provides application services that orchestrate domain logic.
//
// Every operation follows the same shape: load the workspace snapshot,
// transform a deep copy with pure domain functions, save the copy. A
// per-workspace mutex makes the load-transform-save cycle exclusive, so
// two concurrent operations on one workspace never interleave.
package app

import (
	"context"
	"sync"

	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
	"github.com/rs/zerolog"
)

// Service carries out all workspace operations.
type Service struct {
	store  ports.WorkspaceStore
	clock  ports.Clock
	ids    ports.IDGenerator
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates the workspace service.
func NewService(store ports.WorkspaceStore, clock ports.Clock, ids ports.IDGenerator, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		ids:    ids,
		logger: logger.With().Str("service", "workspace").Logger(),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) lock(workspaceID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[workspaceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[workspaceID] = l
	}
	return l
}

// update runs fn against a deep copy of the workspace snapshot and
// saves the result, all under the workspace lock. A workspace that has
// never been saved starts from the empty state. If fn returns an error
// nothing is saved.
func (s *Service) update(ctx context.Context, workspaceID string, fn func(*workspace.State) error) error {
	l := s.lock(workspaceID)
	l.Lock()
	defer l.Unlock()

	state, err := s.load(ctx, workspaceID)
	if err != nil {
		return err
	}

	next := state.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	return s.store.Save(ctx, workspaceID, next)
}

// read runs fn against the current snapshot without writing back.
func (s *Service) read(ctx context.Context, workspaceID string, fn func(workspace.State) error) error {
	state, err := s.load(ctx, workspaceID)
	if err != nil {
		return err
	}
	return fn(state)
}

func (s *Service) load(ctx context.Context, workspaceID string) (workspace.State, error) {
	state, err := s.store.Load(ctx, workspaceID)
	if err == ports.ErrWorkspaceNotFound {
		return workspace.Empty(), nil
	}
	return state, err
}

// Workspaces lists the workspace ids that have saved state.
func (s *Service) Workspaces(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// Summary computes the dashboard summary for a workspace.
func (s *Service) Summary(ctx context.Context, workspaceID string) (workspace.Summary, error) {
	var out workspace.Summary
	err := s.read(ctx, workspaceID, func(state workspace.State) error {
		out = workspace.Summarize(state)
		return nil
	})
	return out, err
}
