package qrdocs

import (
	"context"
	"time"
)

// Snapshot is a rendered page after sanitization: the cleaned body markup
// plus the identity the markup itself no longer carries.
type Snapshot struct {
	// URL is the final URL after redirects.
	URL string

	// Title is the document title at capture time.
	Title string

	// HTML is the sanitized inner markup of the body element.
	HTML string

	// CapturedAt is the capture time in UTC.
	CapturedAt time.Time
}

// Capture is the unit pushed to sinks: one visited page with its cleaned
// markup, structured record, and LLM rendering.
type Capture struct {
	Title     string      `json:"title"`
	URL       string      `json:"url"`
	Timestamp time.Time   `json:"timestamp"`
	HTML      string      `json:"html"`
	Record    *PageRecord `json:"record"`
	Rendering string      `json:"rendering"`
}

// Validate returns an error if the capture contains invalid fields.
func (c *Capture) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "capture URL required")
	}
	if c.Record == nil {
		return Errorf(EINVALID, "capture record required")
	}
	return nil
}

// Sink receives captures as pages complete. Tasks finish in arbitrary
// order under concurrency; implementations must not assume one.
type Sink interface {
	Push(ctx context.Context, capture *Capture) error
}

// MultiSink fans each capture out to several sinks in order.
type MultiSink []Sink

// Push implements Sink. It stops at the first sink error.
func (m MultiSink) Push(ctx context.Context, capture *Capture) error {
	for _, s := range m {
		if err := s.Push(ctx, capture); err != nil {
			return err
		}
	}
	return nil
}
