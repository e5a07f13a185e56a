// Package postgres provides a Postgres-backed SummaryService.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// psql builds queries with Postgres positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB represents a Postgres connection pool.
type DB struct {
	db  *sql.DB
	dsn string
}

// NewDB creates a new DB for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	conn, err := sql.Open("postgres", db.dsn)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}

	db.db = conn

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		_ = conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
	id TEXT PRIMARY KEY,
	url TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL,
	urdu_summary TEXT NOT NULL DEFAULT '',
	key_points TEXT[] NOT NULL DEFAULT '{}',
	full_text TEXT NOT NULL DEFAULT '',
	word_count INTEGER NOT NULL DEFAULT 0,
	summary_word_count INTEGER NOT NULL DEFAULT 0,
	compression_ratio DOUBLE PRECISION NOT NULL DEFAULT 0,
	reading_time INTEGER NOT NULL DEFAULT 0,
	strategy TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_summaries_url ON summaries(url);
CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at DESC);
`
