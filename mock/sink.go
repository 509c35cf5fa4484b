package mock

import (
	"context"

	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.Sink = (*Sink)(nil)

// Sink is a mock implementation of qrdocs.Sink.
type Sink struct {
	PushFn func(ctx context.Context, capture *qrdocs.Capture) error
}

func (s *Sink) Push(ctx context.Context, capture *qrdocs.Capture) error {
	return s.PushFn(ctx, capture)
}
