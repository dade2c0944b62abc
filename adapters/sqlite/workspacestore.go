package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/apops/apops/domain/workspace"
	"github.com/apops/apops/ports"
)

// WorkspaceStore persists each workspace as a single JSON snapshot row.
// The whole state is small (one building's books) and every operation
// rewrites it atomically, so a snapshot beats a normalized schema here.
type WorkspaceStore struct {
	db *DB
}

var _ ports.WorkspaceStore = (*WorkspaceStore)(nil)

func NewWorkspaceStore(db *DB) *WorkspaceStore {
	return &WorkspaceStore{db: db}
}

func (s *WorkspaceStore) Load(ctx context.Context, workspaceID string) (workspace.State, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT state FROM workspaces WHERE id = ?", workspaceID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return workspace.State{}, ports.ErrWorkspaceNotFound
	}
	if err != nil {
		return workspace.State{}, fmt.Errorf("load workspace %s: %w", workspaceID, err)
	}

	var state workspace.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return workspace.State{}, fmt.Errorf("decode workspace %s: %w", workspaceID, err)
	}
	return state, nil
}

func (s *WorkspaceStore) Save(ctx context.Context, workspaceID string, state workspace.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode workspace %s: %w", workspaceID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, state, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = CURRENT_TIMESTAMP
	`, workspaceID, raw)
	if err != nil {
		return fmt.Errorf("save workspace %s: %w", workspaceID, err)
	}
	return nil
}

func (s *WorkspaceStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM workspaces ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan workspace id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
