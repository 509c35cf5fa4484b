package crawl

import (
	"context"
	"sync"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	"golang.org/x/time/rate"
)

var _ qrdocs.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum interval between navigations to the
// same registrable domain using per-domain token buckets. Navigations to
// different domains never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDomainLimiter creates a limiter enforcing the given minimum interval
// per domain. Each domain gets its own bucket with a burst of 1, so the
// first navigation to a domain proceeds immediately and later ones pace.
// An interval <= 0 disables pacing.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the pacing interval allows a navigation to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limit := rate.Inf
		if d.interval > 0 {
			limit = rate.Every(d.interval)
		}
		limiter = rate.NewLimiter(limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
