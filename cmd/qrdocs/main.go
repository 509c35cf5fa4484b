package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/jero237/qrticket-docs/crawl"
	"github.com/jero237/qrticket-docs/fs"
	"github.com/jero237/qrticket-docs/gemini"
	"github.com/jero237/qrticket-docs/goquery"
	"github.com/jero237/qrticket-docs/htmltomarkdown"
	qrhttp "github.com/jero237/qrticket-docs/http"
	"github.com/jero237/qrticket-docs/rod"
	qrslog "github.com/jero237/qrticket-docs/slog"
	"github.com/jero237/qrticket-docs/sqlite"
)

// version is set at build time via -ldflags.
var version = "dev"

// tokenizerModel is used for local token counting.
const tokenizerModel = "gemini-2.5-flash"

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the crawl archive.
	DB *sqlite.DB

	// Browser held open for the duration of a crawl.
	Browser qrdocs.Browser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		_ = m.Browser.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("qrdocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'qrdocs --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cmd == "preview" {
		deps.Seeder = qrslog.NewLoggingSeeder(newSeeder(cli.Preview.CookieName, cli.Preview.Cookie), logger)
	}

	if cmd == "crawl" {
		m.DB = sqlite.NewDB(dbPath(cli.Crawl.DB))
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set QRDOCS_DB to use a different database path")
			return fmt.Errorf("failed to open database: %w", err)
		}
		deps.Store = sqlite.NewStore(m.DB)

		browser, err := rod.NewBrowser()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		m.Browser = browser

		var tokenCounter qrdocs.TokenCounter
		if cli.Crawl.Tokens {
			tc, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				fmt.Fprintf(stderr, "warning: token counter unavailable: %v\n", err)
			} else {
				tokenCounter = tc
			}
		}

		if cli.Crawl.Sitemap {
			deps.Seeder = qrslog.NewLoggingSeeder(newSeeder(cli.Crawl.CookieName, cli.Crawl.Cookie), logger)
		}

		out := cli.Crawl.Out
		deps.Writer = fs.NewWriter(filepath.Dir(out), filepath.Base(out), htmltomarkdown.NewConverter())

		deps.Crawler = &crawl.Crawler{
			Browser:      rod.NewLoggingBrowser(browser, logger),
			Sanitizer:    goquery.NewSanitizer(),
			Extractor:    goquery.NewExtractor(),
			TokenCounter: tokenCounter,
			Logger:       logger,
		}
	}

	return kongCtx.Run(deps)
}

// newSeeder builds the sitemap seeder, attaching the session cookie when
// one is configured.
func newSeeder(cookieName, cookieValue string) qrdocs.Seeder {
	if cookieValue == "" {
		return qrhttp.NewSitemapSeeder(nil)
	}
	return qrhttp.NewSitemapSeeder(nil, qrhttp.WithSessionCookie(qrdocs.SessionCookie{
		Name:  cookieName,
		Value: cookieValue,
	}))
}

func dbPath(flag string) string {
	if flag != "" {
		return flag
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "qrdocs.db"
	}
	dir := filepath.Join(home, ".qrdocs")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "qrdocs.db")
}
