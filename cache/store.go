// Package cache provides the sqlite-backed render cache.
//
// store.go implements the Store molecule: Get/Put over a single blobs
// table, plus age-based pruning. The store implements composer.BlobCache.
//
// This molecule composes:
//   - NewSQLiteConnection (connection.go)
//   - logging.Logger for structured logging
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vibe_backend/logging"
)

// DefaultMaxAge is how long cached blobs stay valid. Renders are
// idempotent, so expiry only bounds disk growth, not correctness.
const DefaultMaxAge = 7 * 24 * time.Hour

const schema = `
CREATE TABLE IF NOT EXISTS render_blobs (
    key        TEXT PRIMARY KEY,
    blob       BLOB NOT NULL,
    width      INTEGER NOT NULL DEFAULT 0,
    height     INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_render_blobs_created ON render_blobs(created_at);
`

// Store is the render cache.
//
// Thread Safety: Store is safe for concurrent use; SQLite serializes
// writes through the single-writer connection pool.
type Store struct {
	db     *sql.DB
	maxAge time.Duration
	logger *logging.Logger
}

// NewStore opens (or creates) the cache database at path and ensures the
// schema exists.
func NewStore(path string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewTestLogger()
	}

	db, err := NewSQLiteConnection(DefaultConnectionConfig(path))
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: failed to create schema: %w", err)
	}

	return &Store{
		db:     db,
		maxAge: DefaultMaxAge,
		logger: logger.Named("cache"),
	}, nil
}

// Get returns the cached blob for key, or nil on miss. Expired entries
// count as misses and are deleted opportunistically.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	var blob []byte
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT blob, created_at FROM render_blobs WHERE key = ?`, key,
	).Scan(&blob, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: lookup failed: %w", err)
	}

	if s.maxAge > 0 && time.Since(createdAt) > s.maxAge {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM render_blobs WHERE key = ?`, key); err != nil {
			s.logger.Warn("failed to evict expired blob", zap.Error(err))
		}
		return nil, nil
	}
	return blob, nil
}

// Put stores a blob under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, blob []byte) error {
	if key == "" || len(blob) == 0 {
		return fmt.Errorf("cache: key and blob are required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO render_blobs (key, blob, created_at) VALUES (?, ?, ?)`,
		key, blob, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache: store failed: %w", err)
	}
	return nil
}

// Prune deletes entries older than the configured max age and returns the
// number removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM render_blobs WHERE created_at < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("cache: prune failed: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.logger.Info("pruned render cache", zap.Int64("removed", n))
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetMaxAge overrides the expiry budget. Zero disables expiry.
func (s *Store) SetMaxAge(d time.Duration) {
	s.maxAge = d
}
