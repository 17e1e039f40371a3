package core

import (
	"context"
	"strings"
)

// defaultMaxTokens is used when callers do not provide a token budget.
const defaultMaxTokens = 1024

// Provider executes a single generate call against a model backend.
// The core sends one request and expects one text response; streaming,
// tools, and retries are out of scope for this client.
type Provider interface {
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Request is the provider-agnostic generate request. History carries the
// prior conversation in order; Prompt is the active turn sent last.
type Request struct {
	Model       string
	System      string
	History     []Turn
	Prompt      string
	Temperature *float64
	MaxTokens   int
}

// Response carries the single generated text.
type Response struct {
	Text string
}

// Validate checks the request invariants shared by all providers.
func (r *Request) Validate() error {
	if r == nil {
		return wrapInvalid("request is nil")
	}
	if strings.TrimSpace(r.Model) == "" {
		return wrapInvalid("model is required")
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return wrapInvalid("prompt is required")
	}
	return nil
}

// EffectiveMaxTokens returns the configured budget or the default.
func (r *Request) EffectiveMaxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}

// CloneHistory returns a copy of the history slice safe to mutate.
func (r *Request) CloneHistory() []Turn {
	return append([]Turn(nil), r.History...)
}
