package qrdocs

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeURL canonicalizes a URL for visited-set and exclusion checks:
// lower-cased scheme and host, fragment stripped, default ports removed,
// query parameters sorted, trailing slash trimmed except at the root.
// Two URLs addressing the same page normalize to the same string.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "parse URL %q: %v", raw, err)
	}
	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if (u.Scheme == "http" && u.Port() == "80") || (u.Scheme == "https" && u.Port() == "443") {
		u.Host = u.Hostname()
	}

	if u.RawQuery != "" {
		u.RawQuery = u.Query().Encode()
	}

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// ResolveURL resolves href against the page URL it was discovered on.
func ResolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", Errorf(EINVALID, "parse base URL %q: %v", base, err)
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "parse href %q: %v", href, err)
	}
	return b.ResolveReference(h).String(), nil
}

// RegistrableDomain returns the eTLD+1 of the URL's host, which is the
// crawl's scope boundary and the rate limiter's pacing key. Hosts without
// a public suffix (IPs, localhost) fall back to the bare hostname.
func RegistrableDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return ""
	}
	if d, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return d
	}
	return host
}

// SameSite reports whether two URLs share a registrable domain.
func SameSite(a, b string) bool {
	da, db := RegistrableDomain(a), RegistrableDomain(b)
	return da != "" && da == db
}
