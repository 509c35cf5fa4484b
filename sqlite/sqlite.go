// Package sqlite provides the SQLite crawl archive: one row per run and
// one row per captured page.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// schema is applied on every Open; all statements are idempotent.
const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed_url TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL DEFAULT '',
		stop_reason TEXT NOT NULL DEFAULT '',
		extracted INTEGER NOT NULL DEFAULT 0,
		skipped INTEGER NOT NULL DEFAULT 0,
		failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		html TEXT NOT NULL DEFAULT '',
		record TEXT NOT NULL DEFAULT '',
		rendering TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		captured_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run_id ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
`

// DB is a handle to the archive database. Use ":memory:" as the path
// for an ephemeral database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns an unopened DB for the given path.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects, applies pragmas, and ensures the schema exists.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; a second connection would only
	// produce lock contention.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{
		// Wait out lock contention instead of failing immediately.
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	// WAL is unsupported for in-memory databases.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns connection pool statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}
