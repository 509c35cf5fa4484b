package qrdocs

import (
	"context"
	"regexp"
)

// Seeder discovers additional crawl entry points for a site, e.g. from
// its sitemap. Discovered URLs feed the frontier before crawling starts.
type Seeder interface {
	// DiscoverURLs finds crawlable URLs for the site.
	// If filter is nil, all discovered URLs are returned.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter specifies patterns for including/excluding URLs.
type URLFilter struct {
	// Include patterns. If set, only URLs matching at least one pattern
	// are included.
	Include []*regexp.Regexp

	// Exclude patterns, applied after Include. URLs matching any pattern
	// are excluded.
	Exclude []*regexp.Regexp
}

// Match returns true if the URL passes the filter.
// A nil filter passes every URL.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, url string) bool {
	for _, re := range patterns {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}
