// Package rod implements the browser collaborator with go-rod driving
// headless Chromium.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure Browser implements qrdocs.Browser at compile time.
var _ qrdocs.Browser = (*Browser)(nil)

// linksJS enumerates anchor targets on the live, pre-sanitization page.
// The href property is already resolved to an absolute URL by the browser.
const linksJS = `() => Array.from(document.querySelectorAll("a[href]")).map(a => a.href)`

// idleWindow is how long the network must stay quiet before a page
// counts as idle.
const idleWindow = 300 * time.Millisecond

// Browser drives authenticated navigations in headless Chromium.
// The underlying browser process is recycled periodically (see
// BrowserManager), which is why callers re-apply the session cookie
// before every navigation. Browser is safe for concurrent use.
type Browser struct {
	manager *BrowserManager
}

// NewBrowser launches a headless Chromium instance.
// Close must be called when the Browser is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...ManagerOption) (*Browser, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Browser{manager: manager}, nil
}

// SetCookie installs the session cookie in the current browser instance,
// scoped to the cookie's origin.
func (b *Browser) SetCookie(ctx context.Context, cookie qrdocs.SessionCookie) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.manager.Browser().SetCookies([]*proto.NetworkCookieParam{{
		Name:  cookie.Name,
		Value: cookie.Value,
		URL:   cookie.OriginURL,
	}})
	if err != nil {
		return fmt.Errorf("setting session cookie: %w", err)
	}
	return nil
}

// Navigate loads the URL in a fresh page and waits for the initial
// document. The returned page must be closed by the caller.
func (b *Browser) Navigate(ctx context.Context, url string) (qrdocs.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := b.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, qrdocs.Errorf(qrdocs.ENAVIGATION, "open page for %s: %v", url, err)
	}
	p = p.Context(ctx)

	if err := p.Navigate(url); err != nil {
		_ = p.Close()
		return nil, qrdocs.Errorf(qrdocs.ENAVIGATION, "navigate to %s: %v", url, err)
	}
	if err := p.WaitLoad(); err != nil {
		_ = p.Close()
		return nil, qrdocs.Errorf(qrdocs.ENAVIGATION, "load %s: %v", url, err)
	}

	b.manager.IncrementPageCount()
	return &page{page: p}, nil
}

// Close releases browser resources.
func (b *Browser) Close() error {
	return b.manager.Close()
}

// Ensure page implements qrdocs.Page at compile time.
var _ qrdocs.Page = (*page)(nil)

// page adapts one rod page to qrdocs.Page.
type page struct {
	page *rod.Page
}

// URL returns the final URL after redirects.
func (p *page) URL() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", qrdocs.Errorf(qrdocs.ENAVIGATION, "page info: %v", err)
	}
	return info.URL, nil
}

// Title returns the document title.
func (p *page) Title() (string, error) {
	info, err := p.page.Info()
	if err != nil {
		return "", qrdocs.Errorf(qrdocs.ENAVIGATION, "page info: %v", err)
	}
	return info.Title, nil
}

// HTML returns the rendered document markup.
func (p *page) HTML() (string, error) {
	html, err := p.page.HTML()
	if err != nil {
		return "", qrdocs.Errorf(qrdocs.EEXTRACTION, "read page HTML: %v", err)
	}
	return html, nil
}

// WaitIdle blocks until in-flight network requests have been quiet for
// idleWindow, or the timeout lapses.
func (p *page) WaitIdle(timeout time.Duration) error {
	pg := p.page.Timeout(timeout)
	defer pg.CancelTimeout()

	pg.WaitRequestIdle(idleWindow, nil, nil, nil)()

	if err := pg.GetContext().Err(); err != nil {
		return qrdocs.Errorf(qrdocs.ENAVIGATION, "wait for network idle: %v", err)
	}
	return nil
}

// Links returns the absolute href targets of anchor elements on the
// live page.
func (p *page) Links() ([]string, error) {
	obj, err := p.page.Eval(linksJS)
	if err != nil {
		return nil, qrdocs.Errorf(qrdocs.EEXTRACTION, "enumerate links: %v", err)
	}

	var links []string
	for _, v := range obj.Value.Arr() {
		links = append(links, v.Str())
	}
	return links, nil
}

// Close releases the page.
func (p *page) Close() error {
	return p.page.Close()
}
