package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	qrdocs "github.com/jero237/qrticket-docs"
)

// Run is one crawl run's archive row.
type Run struct {
	ID         string
	SeedURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	StopReason string
	Extracted  int
	Skipped    int
	Failed     int
}

// Page is one captured page's archive row. Record holds the PageRecord
// as JSON.
type Page struct {
	ID          string
	RunID       string
	URL         string
	Title       string
	HTML        string
	Record      json.RawMessage
	Rendering   string
	ContentHash string
	CapturedAt  time.Time
}

// RunFilter narrows FindRuns results.
type RunFilter struct {
	ID      *string
	SeedURL *string
	Limit   int
	Offset  int
}

// PageFilter narrows FindPages results.
type PageFilter struct {
	RunID  *string
	URL    *string
	Limit  int
	Offset int
}

// Store archives crawl runs and their captured pages.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// hashContent computes the xxHash of content and returns it hex encoded.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateRun records the start of a crawl run and returns it.
func (s *Store) CreateRun(ctx context.Context, seedURL string) (*Run, error) {
	if seedURL == "" {
		return nil, qrdocs.Errorf(qrdocs.EINVALID, "run seed URL required")
	}

	run := &Run{
		ID:        uuid.New().String(),
		SeedURL:   seedURL,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.SeedURL, run.StartedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FinishRun records a run's terminal counters and stop reason.
func (s *Store) FinishRun(ctx context.Context, runID string, result *qrdocs.CrawlResult) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, stop_reason = ?, extracted = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), string(result.Reason),
		result.Extracted, result.Skipped, result.Failed, runID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return qrdocs.Errorf(qrdocs.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *Store) FindRunByID(ctx context.Context, id string) (*Run, error) {
	runs, err := s.FindRuns(ctx, RunFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, qrdocs.Errorf(qrdocs.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *Store) FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, seed_url, started_at, finished_at, stop_reason, extracted, skipped, failed FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SeedURL != nil {
		query.WriteString(" AND seed_url = ?")
		args = append(args, *filter.SeedURL)
	}

	query.WriteString(" ORDER BY started_at DESC")
	limitOffset(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindPages retrieves archived pages matching the filter, oldest first.
func (s *Store) FindPages(ctx context.Context, filter PageFilter) ([]*Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, url, title, html, record, rendering, content_hash, captured_at FROM pages WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY captured_at ASC")
	limitOffset(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*Page
	for rows.Next() {
		var page Page
		var record, capturedAt string
		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Title, &page.HTML,
			&record, &page.Rendering, &page.ContentHash, &capturedAt); err != nil {
			return nil, err
		}
		page.Record = json.RawMessage(record)
		page.CapturedAt, err = scanTime(capturedAt, "captured_at")
		if err != nil {
			return nil, err
		}
		pages = append(pages, &page)
	}
	return pages, rows.Err()
}

// RunSink returns a Sink that archives captures under the given run.
func (s *Store) RunSink(runID string) *RunSink {
	return &RunSink{store: s, runID: runID}
}

// scanRun reads one runs row. finished_at is empty while the run is
// still in flight.
func scanRun(rows *sql.Rows) (*Run, error) {
	var run Run
	var startedAt, finishedAt string

	if err := rows.Scan(&run.ID, &run.SeedURL, &startedAt, &finishedAt, &run.StopReason,
		&run.Extracted, &run.Skipped, &run.Failed); err != nil {
		return nil, err
	}

	var err error
	run.StartedAt, err = scanTime(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	if finishedAt != "" {
		run.FinishedAt, err = scanTime(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}
	}
	return &run, nil
}

// Ensure RunSink implements qrdocs.Sink at compile time.
var _ qrdocs.Sink = (*RunSink)(nil)

// RunSink archives each pushed capture as one pages row.
type RunSink struct {
	store *Store
	runID string
}

// Push implements qrdocs.Sink.
func (rs *RunSink) Push(ctx context.Context, capture *qrdocs.Capture) error {
	if err := capture.Validate(); err != nil {
		return err
	}

	record, err := json.Marshal(capture.Record)
	if err != nil {
		return err
	}

	_, err = rs.store.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, title, html, record, rendering, content_hash, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), rs.runID, capture.URL, capture.Title, capture.HTML,
		string(record), capture.Rendering, hashContent(capture.HTML),
		capture.Timestamp.UTC().Format(time.RFC3339))

	return err
}

// scanTime decodes a stored RFC 3339 timestamp column.
func scanTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, qrdocs.Errorf(qrdocs.EINTERNAL, "corrupt %s timestamp %q: %v", column, value, err)
	}
	return t, nil
}

// limitOffset applies a filter's pagination to the query. Zero values
// leave the result set unbounded.
func limitOffset(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
