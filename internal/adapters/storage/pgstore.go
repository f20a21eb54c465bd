package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PGStore persists key-value state in a single kv_state table. The schema is
// managed by the migrate command (see migrations/).
type PGStore struct {
	db *sqlx.DB
}

// NewPGStore creates a postgres-backed key-value store. The connection is
// owned by the caller.
func NewPGStore(db *sqlx.DB) *PGStore {
	return &PGStore{db: db}
}

// Load reads the value for key
func (s *PGStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv_state WHERE key = $1`

	var value []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load %q: %w", key, err)
	}
	return value, true, nil
}

// Save upserts the value for key
func (s *PGStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_state (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save %q: %w", key, err)
	}
	return nil
}

// Close is a no-op; the connection pool belongs to the composition root.
func (s *PGStore) Close() error {
	return nil
}
