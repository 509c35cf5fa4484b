package mock

import (
	"context"

	qrdocs "github.com/jero237/qrticket-docs"
)

var _ qrdocs.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of qrdocs.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (t *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return t.CountTokensFn(ctx, text)
}
