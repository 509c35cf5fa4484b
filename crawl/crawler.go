// Package crawl drives the crawl lifecycle: it seeds the frontier,
// applies session authentication per navigation, enforces per-domain
// pacing and the total page budget, hands each rendered page to the
// sanitizer and extractor, pushes captures to the sink, and enqueues
// discovered same-site links.
package crawl

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
	"golang.org/x/sync/errgroup"
)

// drainTimeout bounds how long Run waits for in-flight results after the
// coordinator loop exits.
const drainTimeout = 5 * time.Second

// Crawler orchestrates crawl runs. All collaborator fields except
// TokenCounter, RateLimiter, Progress, and Logger are required.
type Crawler struct {
	Browser   qrdocs.Browser
	Sanitizer qrdocs.Sanitizer
	Extractor qrdocs.Extractor
	Sink      qrdocs.Sink

	// RateLimiter paces navigations per registrable domain.
	// Defaults to a token bucket honoring the run's Delay.
	RateLimiter qrdocs.DomainLimiter

	// TokenCounter, when set, accumulates rendering token counts into
	// the run result.
	TokenCounter qrdocs.TokenCounter

	// Progress, when set, is called as tasks reach terminal states.
	Progress qrdocs.CrawlProgressFunc

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// taskResult is the outcome of processing one task.
type taskResult struct {
	task     qrdocs.CrawlTask
	capture  *qrdocs.Capture
	links    []string
	duration time.Duration

	// skip, when non-empty, marks the task Skipped and explains why.
	skip string

	err error
}

// run holds the mutable state of one Run invocation. The frontier and
// limiter are safe for concurrent use; everything else is written only
// by the coordinator goroutine.
type run struct {
	crawler  *Crawler
	cfg      qrdocs.CrawlConfig
	logger   *slog.Logger
	exclude  *regexp.Regexp
	frontier *Frontier
	limiter  qrdocs.DomainLimiter
	result   qrdocs.CrawlResult
}

// Run crawls from the configured seed until the frontier empties, the
// page budget is spent, or the context is canceled. Configuration errors
// abort the run before it starts; per-task errors are isolated and mark
// only their own task Failed. On cancellation the partial result is
// returned together with the context error.
func (c *Crawler) Run(ctx context.Context, cfg qrdocs.CrawlConfig) (*qrdocs.CrawlResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	var exclude *regexp.Regexp
	if cfg.Exclude != "" {
		var err error
		exclude, err = regexp.Compile(cfg.Exclude)
		if err != nil {
			return nil, qrdocs.Errorf(qrdocs.EINVALID, "exclusion pattern %q: %v", cfg.Exclude, err)
		}
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limiter := c.RateLimiter
	if limiter == nil {
		limiter = NewDomainLimiter(cfg.Delay)
	}

	r := &run{
		crawler:  c,
		cfg:      cfg,
		logger:   logger,
		exclude:  exclude,
		frontier: NewFrontier(cfg.MaxPages),
		limiter:  limiter,
	}
	r.result.Seed = cfg.SeedURL

	started := time.Now()
	logger.Info("crawl started",
		"seed", cfg.SeedURL,
		"budget", cfg.MaxPages,
		"concurrency", cfg.Concurrency)

	r.enqueue(ctx, cfg.SeedURL, "")
	for _, seed := range cfg.Seeds {
		r.enqueue(ctx, seed, "")
	}

	workCh := make(chan qrdocs.CrawlTask, cfg.Concurrency)
	resultCh := make(chan taskResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Concurrency; i++ {
		g.Go(func() error {
			for task := range workCh {
				res := r.process(gctx, task)
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(resultCh)
	}()

	pending := 0
	var next *qrdocs.CrawlTask
	if task, ok := r.frontier.Pop(); ok {
		next = &task
	}

coordinator:
	for {
		if next == nil && pending == 0 {
			break
		}
		if ctx.Err() != nil {
			break
		}

		if next != nil {
			select {
			case <-ctx.Done():
				break coordinator
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				r.handle(ctx, res)
			}
		} else {
			select {
			case <-ctx.Done():
				break coordinator
			case res, ok := <-resultCh:
				if !ok {
					break coordinator
				}
				pending--
				r.handle(ctx, res)
			}
		}

		if next == nil {
			if task, ok := r.frontier.Pop(); ok {
				next = &task
			}
		}
	}

	close(workCh)

	// Reaching the budget or the frontier's end stops scheduling; tasks
	// already dispatched still finish and their results still count.
	drain := time.After(drainTimeout)
drainLoop:
	for pending > 0 {
		select {
		case res, ok := <-resultCh:
			if !ok {
				break drainLoop
			}
			pending--
			r.handle(ctx, res)
		case <-drain:
			break drainLoop
		}
	}

	r.result.Duration = time.Since(started)
	switch {
	case ctx.Err() != nil:
		r.result.Reason = qrdocs.StopCanceled
	case r.frontier.Exhausted():
		r.result.Reason = qrdocs.StopBudgetExhausted
	default:
		r.result.Reason = qrdocs.StopFrontierEmpty
	}

	logger.Info("crawl finished",
		"reason", string(r.result.Reason),
		"extracted", r.result.Extracted,
		"skipped", r.result.Skipped,
		"failed", r.result.Failed,
		"duration", r.result.Duration)

	result := r.result
	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// process executes one task end to end: pace, authenticate, navigate,
// wait for network idle, sanitize, extract. It runs on a worker
// goroutine and touches only concurrency-safe run state.
func (r *run) process(ctx context.Context, task qrdocs.CrawlTask) taskResult {
	res := taskResult{task: task}
	started := time.Now()
	defer func() { res.duration = time.Since(started) }()

	if err := r.limiter.Wait(ctx, qrdocs.RegistrableDomain(task.URL)); err != nil {
		res.err = err
		return res
	}

	// The browser context may have been recycled since the last task,
	// so the session cookie is re-applied before every navigation.
	if err := r.crawler.Browser.SetCookie(ctx, r.cfg.Cookie); err != nil {
		res.err = err
		return res
	}

	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavTimeout)
	defer cancel()

	page, err := r.crawler.Browser.Navigate(navCtx, task.URL)
	if err != nil {
		res.err = err
		return res
	}
	defer page.Close()

	if err := page.WaitIdle(r.cfg.NavTimeout); err != nil {
		res.err = err
		return res
	}

	finalURL, err := page.URL()
	if err != nil {
		res.err = err
		return res
	}

	// A redirect may land on an excluded or already-captured URL.
	if norm, err := qrdocs.NormalizeURL(finalURL); err == nil && norm != task.URL {
		if r.exclude != nil && r.exclude.MatchString(norm) {
			res.skip = "redirected to excluded URL"
			return res
		}
		if !r.frontier.MarkVisited(norm) {
			res.skip = "redirected to visited URL"
			return res
		}
	}

	title, err := page.Title()
	if err != nil {
		res.err = err
		return res
	}
	rendered, err := page.HTML()
	if err != nil {
		res.err = err
		return res
	}

	// Link discovery reads the live page before sanitization; a failure
	// here costs discovery, not the task.
	if links, err := page.Links(); err == nil {
		res.links = links
	}

	cleaned, err := r.crawler.Sanitizer.Sanitize(rendered)
	if err != nil {
		res.err = err
		return res
	}

	snap := &qrdocs.Snapshot{
		URL:        finalURL,
		Title:      title,
		HTML:       cleaned,
		CapturedAt: time.Now().UTC(),
	}
	rec, err := r.crawler.Extractor.Extract(snap)
	if err != nil {
		res.err = err
		return res
	}

	res.capture = &qrdocs.Capture{
		Title:     rec.Title,
		URL:       rec.URL,
		Timestamp: snap.CapturedAt,
		HTML:      cleaned,
		Record:    rec,
		Rendering: qrdocs.FormatRecord(rec),
	}
	return res
}

// handle settles one task result. Called only from the coordinator
// goroutine.
func (r *run) handle(ctx context.Context, res taskResult) {
	if res.err != nil {
		r.finish(res.task.URL, qrdocs.TaskFailed, res.duration, res.err)
		return
	}
	if res.skip != "" {
		r.logger.Debug("task skipped", "url", res.task.URL, "reason", res.skip)
		r.finish(res.task.URL, qrdocs.TaskSkipped, res.duration, nil)
		return
	}

	if err := r.crawler.Sink.Push(ctx, res.capture); err != nil {
		r.finish(res.task.URL, qrdocs.TaskFailed, res.duration, err)
		return
	}

	r.result.Bytes += int64(len(res.capture.HTML))
	if r.crawler.TokenCounter != nil {
		if tokens, err := r.crawler.TokenCounter.CountTokens(ctx, res.capture.Rendering); err == nil {
			r.result.Tokens += tokens
		}
	}
	r.finish(res.task.URL, qrdocs.TaskExtracted, res.duration, nil)

	// The capture is out before outbound links join the frontier.
	for _, link := range res.links {
		r.enqueue(ctx, link, res.task.URL)
	}
}

// enqueue routes one discovered URL: off-site and malformed URLs are
// dropped, exclusion matches become terminal Skipped tasks without ever
// being queued, and the rest join the queue with provenance. Called only
// from the coordinator goroutine.
func (r *run) enqueue(_ context.Context, rawURL, from string) {
	resolved := rawURL
	if from != "" {
		var err error
		resolved, err = qrdocs.ResolveURL(from, rawURL)
		if err != nil {
			return
		}
	}
	norm, err := qrdocs.NormalizeURL(resolved)
	if err != nil {
		return
	}
	if !qrdocs.SameSite(norm, r.cfg.SeedURL) {
		return
	}

	if r.exclude != nil && r.exclude.MatchString(norm) {
		if r.frontier.Accept(norm) {
			r.finish(norm, qrdocs.TaskSkipped, 0, nil)
		}
		return
	}

	if r.frontier.Push(qrdocs.CrawlTask{URL: norm, DiscoveredFrom: from}) {
		r.result.Discovered++
		r.logger.Debug("task queued", "url", norm, "from", from)
	}
}

// finish records a task's terminal state.
func (r *run) finish(url string, state qrdocs.TaskState, duration time.Duration, err error) {
	switch state {
	case qrdocs.TaskExtracted:
		r.result.Extracted++
	case qrdocs.TaskSkipped:
		r.result.Skipped++
	case qrdocs.TaskFailed:
		r.result.Failed++
	}

	if state == qrdocs.TaskFailed {
		r.logger.Warn("task failed", "url", url, "duration", duration, "error", err)
	} else {
		r.logger.Info("task "+string(state), "url", url, "duration", duration)
	}

	if r.crawler.Progress != nil {
		r.crawler.Progress(qrdocs.CrawlProgress{
			URL:       url,
			State:     state,
			Completed: r.result.Visited(),
			Budget:    r.cfg.MaxPages,
			Err:       err,
		})
	}
}
