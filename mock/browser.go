package mock

import (
	"context"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Browser = (*Browser)(nil)

// Browser is a mock implementation of qrdocs.Browser.
type Browser struct {
	SetCookieFn func(ctx context.Context, cookie qrdocs.SessionCookie) error
	NavigateFn  func(ctx context.Context, url string) (qrdocs.Page, error)
	CloseFn     func() error
}

func (b *Browser) SetCookie(ctx context.Context, cookie qrdocs.SessionCookie) error {
	return b.SetCookieFn(ctx, cookie)
}

func (b *Browser) Navigate(ctx context.Context, url string) (qrdocs.Page, error) {
	return b.NavigateFn(ctx, url)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}

var _ qrdocs.Page = (*Page)(nil)

// Page is a mock implementation of qrdocs.Page.
type Page struct {
	URLFn      func() (string, error)
	TitleFn    func() (string, error)
	HTMLFn     func() (string, error)
	WaitIdleFn func(timeout time.Duration) error
	LinksFn    func() ([]string, error)
	CloseFn    func() error
}

func (p *Page) URL() (string, error) {
	return p.URLFn()
}

func (p *Page) Title() (string, error) {
	return p.TitleFn()
}

func (p *Page) HTML() (string, error) {
	return p.HTMLFn()
}

func (p *Page) WaitIdle(timeout time.Duration) error {
	return p.WaitIdleFn(timeout)
}

func (p *Page) Links() ([]string, error) {
	return p.LinksFn()
}

func (p *Page) Close() error {
	return p.CloseFn()
}
