package llm

import (
	"context"
	"errors"
)

// Client completes a prompt that asks for a JSON answer and returns the raw text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned when no provider is configured.
var ErrNotConfigured = errors.New("llm provider not configured")

// Disabled is used when LLM_PROVIDER=none or credentials are missing.
type Disabled struct{}

// Complete always fails with ErrNotConfigured.
func (Disabled) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrNotConfigured
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
