package main

import (
	"fmt"
	"regexp"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/jero237/qrticket-docs/crawl"
	qrslog "github.com/jero237/qrticket-docs/slog"
	"github.com/jero237/qrticket-docs/sqlite"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	cfg := qrdocs.CrawlConfig{
		SeedURL: c.URL,
		Cookie: qrdocs.SessionCookie{
			Name:  c.CookieName,
			Value: c.Cookie,
		},
		Exclude:     c.Exclude,
		Delay:       c.Delay,
		MaxPages:    c.MaxPages,
		NavTimeout:  c.Timeout,
		Concurrency: c.Concurrency,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", qrdocs.ErrorMessage(err))
		return err
	}

	if c.Sitemap && deps.Seeder != nil {
		seeds, err := deps.Seeder.DiscoverURLs(deps.Ctx, c.URL, excludeFilter(c.Exclude))
		if err != nil {
			// Sitemap seeding is best effort; the seed URL still crawls.
			fmt.Fprintf(deps.Stderr, "warning: sitemap discovery failed: %v\n", err)
		} else {
			cfg.Seeds = seeds
		}
	}

	var run *sqlite.Run
	var sinks qrdocs.MultiSink
	if deps.Writer != nil {
		sinks = append(sinks, deps.Writer)
	}
	if deps.Store != nil {
		var err error
		run, err = deps.Store.CreateRun(deps.Ctx, c.URL)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", qrdocs.ErrorMessage(err))
			return err
		}
		sinks = append(sinks, deps.Store.RunSink(run.ID))
	}
	deps.Crawler.Sink = qrslog.NewLoggingSink(sinks, deps.Logger)
	deps.Crawler.Progress = func(p qrdocs.CrawlProgress) {
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %-9s %s\n",
			p.Completed, p.Budget, string(p.State), crawl.TruncateURL(p.URL, 70))
	}

	result, err := deps.Crawler.Run(deps.Ctx, cfg)
	if run != nil && result != nil {
		if ferr := deps.Store.FinishRun(deps.Ctx, run.ID, result); ferr != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to record run: %v\n", ferr)
		}
	}
	if err != nil {
		if deps.Writer != nil {
			_ = deps.Writer.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}
	if deps.Writer != nil {
		if err := deps.Writer.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing dataset: %v\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d skipped, %d failed, %s, %s) in %s\n",
		result.Extracted, result.Skipped, result.Failed,
		crawl.FormatBytes(result.Bytes), crawl.FormatTokens(result.Tokens),
		result.Duration.Round(time.Millisecond))
	return nil
}

// excludeFilter compiles the exclusion flag into a URL filter.
// Returns nil when no pattern is set; cfg.Validate has already rejected
// malformed patterns.
func excludeFilter(pattern string) *qrdocs.URLFilter {
	if pattern == "" {
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return &qrdocs.URLFilter{Exclude: []*regexp.Regexp{re}}
}
