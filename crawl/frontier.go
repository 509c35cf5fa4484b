package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	qrdocs "github.com/jero237/qrticket-docs"
	"github.com/jero237/qrticket-docs/bloom"
)

// Compile-time interface verification.
var _ qrdocs.Frontier = (*Frontier)(nil)

// Bloom filter sizing for the visited-set negative pre-check.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Frontier is an in-memory crawl frontier: a FIFO task queue plus an
// exact visited set on normalized URLs, with page-budget accounting.
// A Bloom filter fronts the visited set so the common not-yet-seen case
// avoids the hash lookup; the xxhash set stays authoritative, keeping
// duplicate detection exact. Safe for concurrent use.
type Frontier struct {
	mu      sync.Mutex
	seen    *bloom.Filter
	visited map[uint64]struct{}
	queue   []qrdocs.CrawlTask
	budget  int
	claimed int
}

// NewFrontier creates a frontier that accepts at most budget URLs.
// A budget <= 0 means no limit.
func NewFrontier(budget int) *Frontier {
	return &Frontier{
		seen:    bloom.NewFilter(frontierExpectedURLs, frontierFalsePositiveRate),
		visited: make(map[uint64]struct{}),
		budget:  budget,
	}
}

// Push offers a task for navigation. The URL is normalized before any
// check, so URLs differing only by fragment, default port, query order,
// or trailing slash are duplicates. Returns false if the URL was already
// accepted, no budget remains, or the URL cannot be normalized.
func (f *Frontier) Push(task qrdocs.CrawlTask) bool {
	norm, err := qrdocs.NormalizeURL(task.URL)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.claim(norm) {
		return false
	}
	task.URL = norm
	f.queue = append(f.queue, task)
	return true
}

// Accept marks a URL visited and consumes a budget slot without queueing
// it. Returns false under the same conditions as Push.
func (f *Frontier) Accept(url string) bool {
	norm, err := qrdocs.NormalizeURL(url)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.claim(norm)
}

// MarkVisited records a URL reached by redirect without consuming budget.
// Returns false if the URL was already visited.
func (f *Frontier) MarkVisited(url string) bool {
	norm, err := qrdocs.NormalizeURL(url)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isVisited(norm) {
		return false
	}
	f.markVisited(norm)
	return true
}

// Pop returns the next task in discovery order.
// The bool result is false if the queue is empty.
func (f *Frontier) Pop() (qrdocs.CrawlTask, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return qrdocs.CrawlTask{}, false
	}
	task := f.queue[0]
	f.queue = f.queue[1:]
	return task, true
}

// Seen returns true if the URL has been accepted or visited.
func (f *Frontier) Seen(url string) bool {
	norm, err := qrdocs.NormalizeURL(url)
	if err != nil {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isVisited(norm)
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Exhausted reports whether the page budget is fully claimed.
func (f *Frontier) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.budget > 0 && f.claimed >= f.budget
}

// claim marks the normalized URL visited and consumes a budget slot.
// Check and mark happen under f.mu as one step; that single-writer
// discipline is what upholds the no-duplicate-visit and budget
// invariants for any worker count.
func (f *Frontier) claim(norm string) bool {
	if f.budget > 0 && f.claimed >= f.budget {
		return false
	}
	if f.isVisited(norm) {
		return false
	}
	f.markVisited(norm)
	f.claimed++
	return true
}

func (f *Frontier) isVisited(norm string) bool {
	if !f.seen.Test(norm) {
		return false
	}
	_, ok := f.visited[xxhash.Sum64String(norm)]
	return ok
}

func (f *Frontier) markVisited(norm string) {
	f.seen.Add(norm)
	f.visited[xxhash.Sum64String(norm)] = struct{}{}
}
