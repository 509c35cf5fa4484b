package qrdocs

import "context"

// Frontier manages the crawl queue: exact deduplication on normalized
// URLs plus page-budget accounting. A URL is accepted at most once per
// run; acceptance atomically marks it visited and consumes one budget
// slot, so the no-duplicate-visit and budget invariants hold for any
// number of concurrent workers.
type Frontier interface {
	// Push offers a task for navigation. Returns false if the URL was
	// already accepted or no budget remains.
	Push(task CrawlTask) bool

	// Accept marks a URL visited and consumes a budget slot without
	// queueing it, for links that terminate immediately (e.g. exclusion
	// matches). Returns false under the same conditions as Push.
	Accept(url string) bool

	// MarkVisited records a URL reached by redirect so later discoveries
	// of it are rejected. It does not consume budget. Returns false if
	// the URL was already visited.
	MarkVisited(url string) bool

	// Pop returns the next task in discovery order.
	// Returns false if the queue is empty.
	Pop() (CrawlTask, bool)

	// Seen reports whether the URL has been accepted or visited.
	Seen(url string) bool

	// Len returns the number of queued tasks.
	Len() int

	// Exhausted reports whether the page budget is fully claimed.
	Exhausted() bool
}

// DomainLimiter provides per-domain navigation pacing.
type DomainLimiter interface {
	// Wait blocks until the pacing interval allows the next navigation
	// to the domain. Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
