package metrics

import (
	"context"
	"time"

	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
)

// InstrumentedStore wraps a WorkspaceStore and records snapshot write
// metrics. Reads pass through untouched.
type InstrumentedStore struct {
	inner     ports.WorkspaceStore
	collector *Collector
}

// InstrumentStore decorates a store with the collector's snapshot metrics.
func InstrumentStore(inner ports.WorkspaceStore, c *Collector) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, collector: c}
}

func (s *InstrumentedStore) Load(ctx context.Context, workspaceID string) (workspace.State, error) {
	return s.inner.Load(ctx, workspaceID)
}

func (s *InstrumentedStore) Save(ctx context.Context, workspaceID string, state workspace.State) error {
	start := time.Now()
	err := s.inner.Save(ctx, workspaceID, state)
	if err == nil {
		s.collector.SnapshotSaves.WithLabelValues(workspaceID).Inc()
		s.collector.SnapshotSaveDuration.Observe(time.Since(start).Seconds())
	}
	return err
}

func (s *InstrumentedStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

var _ ports.WorkspaceStore = (*InstrumentedStore)(nil)
