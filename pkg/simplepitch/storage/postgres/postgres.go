package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Schema creates the records table. The value column is JSONB so the stored
// arrays stay queryable from psql.
const Schema = `CREATE TABLE IF NOT EXISTS pitch_records (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Backend implements simplepitch.Backend using PostgreSQL
type Backend struct {
	db DBTX
}

// New creates a new PostgreSQL backend
func New(db DBTX) *Backend {
	return &Backend{db: db}
}

// Connect opens a pool for url, verifies it and ensures the schema exists.
func Connect(ctx context.Context, url string) (*Backend, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	b := New(pool)
	if err := b.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return b, pool, nil
}

// Migrate creates the records table when missing.
func (b *Backend) Migrate(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, Schema); err != nil {
		return b.handlePostgresError("migrate", err)
	}
	return nil
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "postgres"
}

// Error handling helper
func (b *Backend) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22P02": // invalid_text_representation
			return fmt.Errorf("record is not valid JSON")
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := b.db.QueryRow(ctx, `SELECT value FROM pitch_records WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, simplepitch.ErrNotFound
	}
	if err != nil {
		return nil, b.handlePostgresError("get", err)
	}
	return value, nil
}

func (b *Backend) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO pitch_records (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := b.db.Exec(ctx, query, key, string(data), time.Now().UTC()); err != nil {
		return b.handlePostgresError("put", err)
	}
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.Exec(ctx, `DELETE FROM pitch_records WHERE key = $1`, key); err != nil {
		return b.handlePostgresError("delete", err)
	}
	return nil
}
