package qrdocs

import "time"

// TaskState identifies where a crawl task is in its lifecycle.
type TaskState string

// Task lifecycle states. Extracted, Skipped and Failed are terminal.
const (
	TaskQueued     TaskState = "queued"
	TaskNavigating TaskState = "navigating"
	TaskExtracted  TaskState = "extracted"
	TaskSkipped    TaskState = "skipped"
	TaskFailed     TaskState = "failed"
)

// Terminal reports whether the state ends a task's lifecycle.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskExtracted, TaskSkipped, TaskFailed:
		return true
	}
	return false
}

// CrawlTask is a transient unit of work: one URL awaiting navigation.
// Tasks are created when a discovered link passes the exclusion filter
// and is not yet in the visited set, and consumed when their navigation
// attempt reaches a terminal state.
type CrawlTask struct {
	URL string

	// DiscoveredFrom is the URL of the page that linked here.
	// Empty for seed URLs.
	DiscoveredFrom string
}

// StopReason explains why a crawl run ended.
type StopReason string

// Stop reasons. BudgetExhausted is a normal terminal condition, not an
// error: in-flight tasks complete gracefully and queued tasks are dropped.
const (
	StopFrontierEmpty   StopReason = "frontier_empty"
	StopBudgetExhausted StopReason = "budget_exhausted"
	StopCanceled        StopReason = "canceled"
)

// CrawlProgress reports a task reaching a terminal state.
type CrawlProgress struct {
	URL       string
	State     TaskState
	Completed int
	Budget    int
	Err       error
}

// CrawlProgressFunc is called as tasks reach terminal states.
type CrawlProgressFunc func(CrawlProgress)

// CrawlResult summarizes a finished run.
type CrawlResult struct {
	Seed       string        `json:"seed"`
	Reason     StopReason    `json:"reason"`
	Extracted  int           `json:"extracted"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Discovered int           `json:"discovered"`
	Bytes      int64         `json:"bytes"`
	Tokens     int           `json:"tokens"`
	Duration   time.Duration `json:"duration"`
}

// Visited returns the number of tasks that reached a terminal state.
func (r *CrawlResult) Visited() int {
	return r.Extracted + r.Skipped + r.Failed
}
