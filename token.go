package qrdocs

import "context"

// TokenCounter counts tokens in text for a specific model. The crawler
// uses it to report the LLM-context cost of each page's rendering.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
