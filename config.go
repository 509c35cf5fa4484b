package qrdocs

import (
	"net/url"
	"regexp"
	"time"
)

// Crawl configuration defaults.
const (
	DefaultDelay       = 2 * time.Second
	DefaultMaxPages    = 100
	DefaultNavTimeout  = 30 * time.Second
	DefaultConcurrency = 1
)

// CrawlConfig describes one crawl run. All knobs are configuration;
// nothing here is hard-coded in the crawl logic.
type CrawlConfig struct {
	// SeedURL is the dashboard entry point.
	SeedURL string

	// Seeds are additional entry points queued after SeedURL, e.g. from
	// sitemap discovery. Off-site and excluded entries are dropped by
	// the same filters as discovered links.
	Seeds []string

	// Cookie is the session cookie injected before every navigation.
	// An empty OriginURL defaults to the seed URL's origin.
	Cookie SessionCookie

	// Exclude is a regular expression matched against normalized URLs.
	// Matching links are marked Skipped and never navigated.
	// Empty disables exclusion.
	Exclude string

	// Delay is the minimum interval between navigations to the same
	// registrable domain.
	Delay time.Duration

	// MaxPages caps the number of tasks reaching a terminal state.
	MaxPages int

	// NavTimeout bounds each navigation and network-idle wait.
	NavTimeout time.Duration

	// Concurrency is the worker pool size.
	Concurrency int
}

// Validate returns an error if the configuration cannot start a run.
// All violations carry EINVALID; the run must not start on any of them.
func (c *CrawlConfig) Validate() error {
	if c.SeedURL == "" {
		return Errorf(EINVALID, "seed URL required")
	}
	u, err := url.Parse(c.SeedURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "seed URL must be absolute: %q", c.SeedURL)
	}
	if c.Cookie.Name == "" {
		return Errorf(EINVALID, "session cookie name required")
	}
	if c.Cookie.Value == "" {
		return Errorf(EINVALID, "session cookie value required")
	}
	if c.Exclude != "" {
		if _, err := regexp.Compile(c.Exclude); err != nil {
			return Errorf(EINVALID, "exclusion pattern %q: %v", c.Exclude, err)
		}
	}
	if c.Delay < 0 {
		return Errorf(EINVALID, "delay must not be negative")
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative")
	}
	return nil
}

// WithDefaults returns a copy of the configuration with zero-valued
// knobs replaced by their defaults and the cookie origin derived from
// the seed URL when unset.
func (c CrawlConfig) WithDefaults() CrawlConfig {
	if c.Delay == 0 {
		c.Delay = DefaultDelay
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.NavTimeout == 0 {
		c.NavTimeout = DefaultNavTimeout
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Cookie.OriginURL == "" {
		c.Cookie.OriginURL = c.SeedURL
	}
	return c
}
