// Package slog provides logging decorators for qrdocs collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure LoggingSink implements qrdocs.Sink.
var _ qrdocs.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with per-capture logging.
type LoggingSink struct {
	next   qrdocs.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next qrdocs.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Push delegates to the wrapped sink and logs the capture.
func (s *LoggingSink) Push(ctx context.Context, capture *qrdocs.Capture) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("capture pushed",
			"url", capture.URL,
			"title", capture.Title,
			"bytes", len(capture.HTML),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Push(ctx, capture)
}
