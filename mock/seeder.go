package mock

import (
	"context"

	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Seeder = (*Seeder)(nil)

// Seeder is a mock implementation of qrdocs.Seeder.
type Seeder struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *qrdocs.URLFilter) ([]string, error)
}

func (s *Seeder) DiscoverURLs(ctx context.Context, baseURL string, filter *qrdocs.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
