package slog

import (
	"context"
	"log/slog"
	"time"

	qrdocs "github.com/jero237/qrticket-docs"
)

// Ensure LoggingSeeder implements qrdocs.Seeder.
var _ qrdocs.Seeder = (*LoggingSeeder)(nil)

// LoggingSeeder wraps a Seeder with discovery logging.
type LoggingSeeder struct {
	next   qrdocs.Seeder
	logger *slog.Logger
}

// NewLoggingSeeder creates a new LoggingSeeder.
func NewLoggingSeeder(next qrdocs.Seeder, logger *slog.Logger) *LoggingSeeder {
	return &LoggingSeeder{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped seeder and logs the operation.
func (s *LoggingSeeder) DiscoverURLs(ctx context.Context, baseURL string, filter *qrdocs.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("seed discovery",
			"url", baseURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
