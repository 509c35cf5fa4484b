package rod

import (
	"context"
	"log/slog"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure LoggingBrowser implements qrdocs.Browser.
var _ qrdocs.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with navigation logging.
type LoggingBrowser struct {
	next   qrdocs.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next qrdocs.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// SetCookie logs the cookie scope and delegates to the wrapped browser.
// The cookie value itself is never logged.
func (b *LoggingBrowser) SetCookie(ctx context.Context, cookie qrdocs.SessionCookie) (err error) {
	defer func() {
		b.logger.Debug("set session cookie",
			"name", cookie.Name,
			"origin", cookie.OriginURL,
			"err", err,
		)
	}()
	return b.next.SetCookie(ctx, cookie)
}

// Navigate logs the URL being navigated to and delegates to the wrapped
// browser.
func (b *LoggingBrowser) Navigate(ctx context.Context, url string) (page qrdocs.Page, err error) {
	defer func(begin time.Time) {
		b.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Navigate(ctx, url)
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}
