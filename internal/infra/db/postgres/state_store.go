package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"orcafacil/go_backend/internal/infra/state"
)

const schema = `
CREATE TABLE IF NOT EXISTS workspace_sessions (
	workspace_id TEXT PRIMARY KEY,
	token        TEXT NOT NULL,
	user_json    TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS workspace_cache (
	workspace_id TEXT NOT NULL,
	kind         TEXT NOT NULL,
	payload      TEXT NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (workspace_id, kind)
);`

// StateStore keeps workspace credentials and cache in Postgres.
type StateStore struct {
	db *DB
}

var _ state.Store = (*StateStore)(nil)

// NewStateStore creates the tables when missing.
func NewStateStore(ctx context.Context, db *DB) (*StateStore, error) {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create state schema: %w", err)
	}
	return &StateStore{db: db}, nil
}

func (s *StateStore) LoadSession(ctx context.Context, workspaceID string) (state.Credentials, error) {
	var (
		token string
		user  string
	)
	err := s.db.Pool.QueryRow(ctx,
		`SELECT token, user_json FROM workspace_sessions WHERE workspace_id = $1`,
		workspaceID,
	).Scan(&token, &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return state.Credentials{}, state.ErrNotFound
	}
	if err != nil {
		return state.Credentials{}, fmt.Errorf("load session: %w", err)
	}
	return state.Credentials{Token: token, User: []byte(user)}, nil
}

func (s *StateStore) SaveSession(ctx context.Context, workspaceID string, c state.Credentials) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO workspace_sessions (workspace_id, token, user_json, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (workspace_id) DO UPDATE
		SET token = EXCLUDED.token, user_json = EXCLUDED.user_json, updated_at = now()`,
		workspaceID, c.Token, string(c.User))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *StateStore) ClearSession(ctx context.Context, workspaceID string) error {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_cache WHERE workspace_id = $1`, workspaceID); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM workspace_sessions WHERE workspace_id = $1`, workspaceID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return tx.Commit(ctx)
}

func (s *StateStore) LoadCache(ctx context.Context, workspaceID, kind string) ([]byte, error) {
	var payload string
	err := s.db.Pool.QueryRow(ctx,
		`SELECT payload FROM workspace_cache WHERE workspace_id = $1 AND kind = $2`,
		workspaceID, kind,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	return []byte(payload), nil
}

func (s *StateStore) SaveCache(ctx context.Context, workspaceID, kind string, payload []byte) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO workspace_cache (workspace_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (workspace_id, kind) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()`,
		workspaceID, kind, string(payload))
	if err != nil {
		return fmt.Errorf("save cache: %w", err)
	}
	return nil
}
