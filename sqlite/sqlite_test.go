package sqlite_test

import (
	"context"
	"testing"

	"github.com/jero237/qrticket-docs/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify tables exist by querying them
		ctx := context.Background()

		var runCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&runCount)
		require.NoError(t, err)

		var pageCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pageCount)
		require.NoError(t, err)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		var journalMode string
		err = db.QueryRowContext(context.Background(), "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("deleting a run cascades to its pages", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()

		ctx := context.Background()
		_, err := db.ExecContext(ctx, `INSERT INTO runs (id, seed_url, started_at) VALUES ('r1', 'https://dash.example.com', '2026-08-26T00:00:00Z')`)
		require.NoError(t, err)
		_, err = db.ExecContext(ctx, `INSERT INTO pages (id, run_id, url, captured_at) VALUES ('p1', 'r1', 'https://dash.example.com/events', '2026-08-26T00:00:01Z')`)
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, `DELETE FROM runs WHERE id = 'r1'`)
		require.NoError(t, err)

		var pageCount int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&pageCount)
		require.NoError(t, err)
		require.Zero(t, pageCount)
	})
}
