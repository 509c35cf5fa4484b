package qrdocs

import (
	"context"
	"time"
)

// SessionCookie authenticates the crawl session. The cookie is read-only
// state for the duration of a run.
type SessionCookie struct {
	Name  string
	Value string

	// OriginURL scopes the cookie to the dashboard's origin.
	OriginURL string
}

// Browser drives an authenticated, JavaScript-capable navigation session.
// Implementations may recreate the underlying browser context between
// tasks, so callers re-apply the session cookie before each navigation.
type Browser interface {
	// SetCookie installs the session cookie scoped to its origin.
	SetCookie(ctx context.Context, cookie SessionCookie) error

	// Navigate loads the URL in a fresh page and waits for the initial
	// document. Returns ENAVIGATION on network, DNS, or timeout failure.
	Navigate(ctx context.Context, url string) (Page, error)

	// Close releases browser resources.
	// Must be called when the Browser is no longer needed.
	Close() error
}

// Page is one live navigation. Each task owns its page for the duration
// of the task and must Close it when done.
type Page interface {
	// URL returns the final URL after redirects.
	URL() (string, error)

	// Title returns the document title.
	Title() (string, error)

	// HTML returns the rendered document markup.
	HTML() (string, error)

	// WaitIdle blocks until network activity settles.
	// Returns ENAVIGATION if the timeout lapses first.
	WaitIdle(timeout time.Duration) error

	// Links returns the href targets of anchor elements on the live,
	// pre-sanitization page, resolved to absolute URLs.
	Links() ([]string, error)

	// Close releases the page.
	Close() error
}
