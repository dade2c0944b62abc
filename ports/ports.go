// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/apops/apops/domain/workspace"
)

// ErrWorkspaceNotFound is returned by WorkspaceStore when the workspace
// has no stored snapshot yet.
var ErrWorkspaceNotFound = errors.New("workspace not found")

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// Hasher provides password hashing for operator login.
type Hasher interface {
	// Hash generates a hash from a plaintext value.
	Hash(plaintext string) ([]byte, error)

	// Compare checks if plaintext matches hash.
	Compare(hash []byte, plaintext string) bool
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// WorkspaceStore persists whole-workspace snapshots. Core operations
// run load -> pure transform -> save; the store is responsible only for
// durability, never for partial updates.
type WorkspaceStore interface {
	// Load returns the full snapshot for a workspace.
	// Returns ErrWorkspaceNotFound when none has been saved yet.
	Load(ctx context.Context, workspaceID string) (workspace.State, error)

	// Save persists a full snapshot, replacing the prior one.
	Save(ctx context.Context, workspaceID string, state workspace.State) error

	// List returns the IDs of all stored workspaces.
	List(ctx context.Context) ([]string, error)
}
