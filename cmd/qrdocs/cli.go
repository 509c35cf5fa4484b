package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/jero237/qrticket-docs/crawl"
	"github.com/jero237/qrticket-docs/fs"
	"github.com/jero237/qrticket-docs/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler
	Seeder  qrdocs.Seeder
	Store   *sqlite.Store
	Writer  *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl an authenticated dashboard into a documentation dataset"`
	Preview PreviewCmd `cmd:"" help:"List sitemap-discovered URLs without crawling"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Dashboard entry point URL"`
	CookieName  string        `default:"session" env:"QRDOCS_COOKIE_NAME" help:"Session cookie name"`
	Cookie      string        `env:"QRDOCS_COOKIE" help:"Session cookie value"`
	Exclude     string        `short:"x" help:"Exclude URLs matching this regex (e.g. '/e/')"`
	Delay       time.Duration `default:"2s" help:"Minimum delay between navigations to the same domain"`
	MaxPages    int           `default:"100" help:"Total page budget"`
	Concurrency int           `short:"c" default:"1" help:"Worker pool size"`
	Timeout     time.Duration `default:"30s" help:"Navigation and network-idle timeout"`
	Out         string        `short:"o" default:"qrdocs-dataset" help:"Dataset output directory"`
	DB          string        `env:"QRDOCS_DB" help:"Archive database path (defaults to ~/.qrdocs/qrdocs.db)"`
	Sitemap     bool          `help:"Seed the frontier from the site's sitemap"`
	Tokens      bool          `help:"Count rendering tokens with the Gemini tokenizer"`
}

// PreviewCmd is the "preview" subcommand.
type PreviewCmd struct {
	URL        string `arg:"" help:"Dashboard entry point URL"`
	CookieName string `default:"session" env:"QRDOCS_COOKIE_NAME" help:"Session cookie name"`
	Cookie     string `env:"QRDOCS_COOKIE" help:"Session cookie value"`
	Exclude    string `short:"x" help:"Exclude URLs matching this regex"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}
