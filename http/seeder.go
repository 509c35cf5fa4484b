// Package http implements sitemap-based seed discovery over plain HTTP.
// Dashboard sitemaps can sit behind authentication, so requests carry the
// crawl's session cookie when one is configured.
package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure SitemapSeeder implements qrdocs.Seeder.
var _ qrdocs.Seeder = (*SitemapSeeder)(nil)

// SitemapSeeder discovers crawl entry points from a site's sitemap:
// robots.txt Sitemap: directives first, /sitemap.xml as fallback, with
// sitemapindex files resolved recursively.
type SitemapSeeder struct {
	client *http.Client
	cookie *qrdocs.SessionCookie
}

// SeederOption configures a SitemapSeeder.
type SeederOption func(*SitemapSeeder)

// WithSessionCookie attaches the session cookie to every sitemap request.
func WithSessionCookie(cookie qrdocs.SessionCookie) SeederOption {
	return func(s *SitemapSeeder) {
		s.cookie = &cookie
	}
}

// NewSitemapSeeder creates a new SitemapSeeder with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSeeder(client *http.Client, opts ...SeederOption) *SitemapSeeder {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapSeeder{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs finds all URLs from the site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
//
// When baseURL has a non-root path (e.g. https://dash.example.com/admin/),
// only URLs under that path are returned, so a dashboard rooted below the
// domain root does not seed the whole site.
func (s *SitemapSeeder) DiscoverURLs(ctx context.Context, baseURL string, filter *qrdocs.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, qrdocs.Errorf(qrdocs.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	pathPrefix := base.Path
	if pathPrefix == "/" {
		pathPrefix = ""
	}

	// Sitemap discovery happens at the domain root regardless of where
	// the dashboard lives.
	sitemapBase := *base
	sitemapBase.Path = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &sitemapBase)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	var all []string
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)

	for _, sitemapURL := range sitemapURLs {
		urls, err := s.walkSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			if !seenURLs[u] {
				seenURLs[u] = true
				all = append(all, u)
			}
		}
	}

	kept := make([]string, 0, len(all))
	for _, u := range all {
		if pathPrefix != "" && !underPathPrefix(u, pathPrefix) {
			continue
		}
		if !filter.Match(u) {
			continue
		}
		kept = append(kept, u)
	}

	return kept, nil
}

// underPathPrefix reports whether the URL's path sits under prefix,
// respecting path boundaries (/admin matches /admin/events, not
// /administration).
func underPathPrefix(rawURL, prefix string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(parsed.Path, prefix)
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back
// to /sitemap.xml.
func (s *SitemapSeeder) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapSeeder) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// walkSitemap fetches and parses one sitemap, handling both urlset and
// sitemapindex documents. Already-seen sitemaps are skipped so index
// cycles terminate.
func (s *SitemapSeeder) walkSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			urls, err := s.walkSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// get fetches a URL, attaching the session cookie when configured, and
// returns the response body.
func (s *SitemapSeeder) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	s.attachCookie(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapSeeder) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	s.attachCookie(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}

func (s *SitemapSeeder) attachCookie(req *http.Request) {
	if s.cookie == nil {
		return
	}
	req.AddCookie(&http.Cookie{Name: s.cookie.Name, Value: s.cookie.Value})
}
