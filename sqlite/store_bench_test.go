package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jero237/qrticket-docs/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkRunSinkPush measures page-archive insert throughput under the
// default pragmas, simulating a crawl pushing captures as pages complete.
func BenchmarkRunSinkPush(b *testing.B) {
	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewStore(db)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, "https://dash.example.com")
	require.NoError(b, err)
	sink := store.RunSink(run.ID)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		capture := archiveCapture(fmt.Sprintf("https://dash.example.com/events/%d", i), "Event")
		if err := sink.Push(ctx, capture); err != nil {
			b.Fatal(err)
		}
	}
}
