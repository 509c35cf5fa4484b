package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	main "github.com/jero237/qrticket-docs/cmd/qrdocs"
	"github.com/jero237/qrticket-docs/crawl"
	"github.com/jero237/qrticket-docs/fs"
	"github.com/jero237/qrticket-docs/goquery"
	"github.com/jero237/qrticket-docs/mock"
	"github.com/jero237/qrticket-docs/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSite describes the pages a mock browser serves.
type fakeSite map[string]fakePage

type fakePage struct {
	title string
	links []string
}

func (s fakeSite) browser(t *testing.T, cookies *[]qrdocs.SessionCookie) *mock.Browser {
	t.Helper()
	var mu sync.Mutex
	return &mock.Browser{
		SetCookieFn: func(ctx context.Context, cookie qrdocs.SessionCookie) error {
			mu.Lock()
			defer mu.Unlock()
			if cookies != nil {
				*cookies = append(*cookies, cookie)
			}
			return nil
		},
		NavigateFn: func(ctx context.Context, url string) (qrdocs.Page, error) {
			fp, ok := s[url]
			if !ok {
				return nil, qrdocs.Errorf(qrdocs.ENAVIGATION, "navigate %s: connection refused", url)
			}
			html := `<html><head><title>` + fp.title + `</title></head><body><main><h1>` +
				fp.title + `</h1><p>Content</p></main></body></html>`
			return &mock.Page{
				URLFn:      func() (string, error) { return url, nil },
				TitleFn:    func() (string, error) { return fp.title, nil },
				HTMLFn:     func() (string, error) { return html, nil },
				WaitIdleFn: func(timeout time.Duration) error { return nil },
				LinksFn:    func() ([]string, error) { return fp.links, nil },
				CloseFn:    func() error { return nil },
			}, nil
		},
		CloseFn: func() error { return nil },
	}
}

// testDeps wires a crawl command against a mock browser, a dataset
// writer in a temp dir, and an in-memory archive.
func testDeps(t *testing.T, browser qrdocs.Browser) (*main.Dependencies, *sqlite.Store, string, *bytes.Buffer) {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	store := sqlite.NewStore(db)

	tmp := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Logger: logger,
		Store:  store,
		Writer: fs.NewWriter(tmp, "dataset", nil),
		Crawler: &crawl.Crawler{
			Browser:   browser,
			Sanitizer: goquery.NewSanitizer(),
			Extractor: goquery.NewExtractor(),
			Logger:    logger,
		},
	}
	return deps, store, filepath.Join(tmp, "dataset"), stdout
}

func testCrawlCmd(url string) *main.CrawlCmd {
	return &main.CrawlCmd{
		URL:         url,
		CookieName:  "session",
		Cookie:      "secret-token",
		Delay:       time.Millisecond,
		MaxPages:    10,
		Concurrency: 1,
		Timeout:     5 * time.Second,
	}
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("captures pages and archives the run", func(t *testing.T) {
		t.Parallel()

		site := fakeSite{
			"https://dash.example.com/attendees": {
				title: "Attendees",
				links: []string{"https://dash.example.com/events/42"},
			},
			"https://dash.example.com/events/42": {
				title: "Event 42",
				links: []string{"https://dash.example.com/attendees"},
			},
		}

		var cookies []qrdocs.SessionCookie
		deps, store, dataset, stdout := testDeps(t, site.browser(t, &cookies))

		cmd := testCrawlCmd("https://dash.example.com/attendees")

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Crawled 2 pages")
		assert.Contains(t, stdout.String(), "extracted")

		// The cookie is re-applied before every navigation.
		require.GreaterOrEqual(t, len(cookies), 2)
		for _, c := range cookies {
			assert.Equal(t, "session", c.Name)
			assert.Equal(t, "secret-token", c.Value)
		}

		// Committed dataset holds a JSON record and a rendering per page.
		entries, err := os.ReadDir(dataset)
		require.NoError(t, err)
		assert.Len(t, entries, 4)
		data, err := os.ReadFile(filepath.Join(dataset, "001-attendees.json"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "https://dash.example.com/attendees")

		// The run row is finished with final counters.
		runs, err := store.FindRuns(context.Background(), sqlite.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://dash.example.com/attendees", runs[0].SeedURL)
		assert.Equal(t, string(qrdocs.StopFrontierEmpty), runs[0].StopReason)
		assert.Equal(t, 2, runs[0].Extracted)
		assert.False(t, runs[0].FinishedAt.IsZero())

		pages, err := store.FindPages(context.Background(), sqlite.PageFilter{RunID: &runs[0].ID})
		require.NoError(t, err)
		assert.Len(t, pages, 2)
	})

	t.Run("excluded links are skipped without navigation", func(t *testing.T) {
		t.Parallel()

		site := fakeSite{
			"https://dash.example.com/attendees": {
				title: "Attendees",
				links: []string{"https://dash.example.com/e/9"},
			},
		}

		deps, _, _, stdout := testDeps(t, site.browser(t, nil))

		cmd := testCrawlCmd("https://dash.example.com/attendees")
		cmd.Exclude = "/e/"

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Crawled 1 pages")
		assert.Contains(t, stdout.String(), "(1 skipped")
	})

	t.Run("failed navigation does not abort the run", func(t *testing.T) {
		t.Parallel()

		site := fakeSite{
			"https://dash.example.com/attendees": {
				title: "Attendees",
				links: []string{"https://dash.example.com/missing"},
			},
		}

		deps, store, _, stdout := testDeps(t, site.browser(t, nil))

		cmd := testCrawlCmd("https://dash.example.com/attendees")

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Crawled 1 pages")
		assert.Contains(t, stdout.String(), "1 failed")

		runs, err := store.FindRuns(context.Background(), sqlite.RunFilter{})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, 1, runs[0].Failed)
	})

	t.Run("sitemap seeds join the frontier", func(t *testing.T) {
		t.Parallel()

		site := fakeSite{
			"https://dash.example.com/attendees": {title: "Attendees"},
			"https://dash.example.com/events":    {title: "Events"},
			"https://dash.example.com/scanner":   {title: "Scanner"},
		}

		deps, _, _, stdout := testDeps(t, site.browser(t, nil))
		deps.Seeder = &mock.Seeder{
			DiscoverURLsFn: func(ctx context.Context, baseURL string, filter *qrdocs.URLFilter) ([]string, error) {
				return []string{
					"https://dash.example.com/events",
					"https://dash.example.com/scanner",
				}, nil
			},
		}

		cmd := testCrawlCmd("https://dash.example.com/attendees")
		cmd.Sitemap = true

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Crawled 3 pages")
	})

	t.Run("rejects configuration without a cookie", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
		}

		cmd := testCrawlCmd("https://dash.example.com/attendees")
		cmd.Cookie = ""

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, qrdocs.EINVALID, qrdocs.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}
