package mock

import (
	"context"

	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of qrdocs.Frontier.
type Frontier struct {
	PushFn        func(task qrdocs.CrawlTask) bool
	AcceptFn      func(url string) bool
	MarkVisitedFn func(url string) bool
	PopFn         func() (qrdocs.CrawlTask, bool)
	SeenFn        func(url string) bool
	LenFn         func() int
	ExhaustedFn   func() bool
}

func (f *Frontier) Push(task qrdocs.CrawlTask) bool {
	return f.PushFn(task)
}

func (f *Frontier) Accept(url string) bool {
	return f.AcceptFn(url)
}

func (f *Frontier) MarkVisited(url string) bool {
	return f.MarkVisitedFn(url)
}

func (f *Frontier) Pop() (qrdocs.CrawlTask, bool) {
	return f.PopFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Exhausted() bool {
	return f.ExhaustedFn()
}

var _ qrdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of qrdocs.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
