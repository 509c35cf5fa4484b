// Package gemini reports the LLM-context cost of page renderings using
// the Gemini local tokenizer. Nothing here talks to the API; counting
// happens entirely in process.
package gemini

import (
	"context"
	"fmt"

	qrdocs "github.com/jero237/qrticket-docs"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ qrdocs.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the vocabulary of one Gemini model.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for the given model. It
// fails for models whose vocabulary is not bundled with the SDK.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose vocabulary backs this counter.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens returns the token count of text. Empty text counts as
// zero without touching the tokenizer.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	res, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, "user")}, nil)
	if err != nil {
		return 0, err
	}
	return int(res.TotalTokens), nil
}
