// Package sqlite provides a SQLite-backed record store for the same device.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Backend persists records in a single SQLite table.
type Backend struct {
	sqlDB *sql.DB
}

// Open opens the database at path, creating the records table when needed.
func Open(path string) (*Backend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &Backend{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (b *Backend) Close() error {
	if b == nil || b.sqlDB == nil {
		return nil
	}
	return b.sqlDB.Close()
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "sqlite"
}

// Get returns the record stored under key.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if b == nil || b.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var value []byte
	err := b.sqlDB.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, simplepitch.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", key, err)
	}
	return value, nil
}

// Put inserts or replaces the record stored under key.
func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	if b == nil || b.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := b.sqlDB.ExecContext(
		ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		data,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put record %s: %w", key, err)
	}
	return nil
}

// Delete removes the record stored under key.
func (b *Backend) Delete(ctx context.Context, key string) error {
	if b == nil || b.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := b.sqlDB.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete record %s: %w", key, err)
	}
	return nil
}
