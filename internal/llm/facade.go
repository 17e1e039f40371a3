// Package llm exposes the canonical model-call contract and the configured
// provider implementations.
package llm

import (
	"bear/internal/llm/core"
	anthropicprovider "bear/internal/llm/providers/anthropic"
	geminiprovider "bear/internal/llm/providers/gemini"
	mockprovider "bear/internal/llm/providers/mock"
)

type (
	// Provider is the public generate-call contract.
	Provider = core.Provider

	// Request and Response define the call payload shape.
	Request  = core.Request
	Response = core.Response

	// Conversation-turn aliases.
	Role = core.Role
	Turn = core.Turn

	// GeminiConfig and GeminiProvider expose the Google GenAI backend.
	GeminiConfig   = geminiprovider.Config
	GeminiProvider = geminiprovider.Provider

	// AnthropicConfig and AnthropicProvider expose the Anthropic backend.
	AnthropicConfig   = anthropicprovider.Config
	AnthropicProvider = anthropicprovider.Provider

	// MockProvider answers with scripted responses for tests.
	MockProvider = mockprovider.Provider
)

const (
	RoleUser  = core.RoleUser
	RoleModel = core.RoleModel
)

var (
	// ErrInvalidRequest indicates malformed canonical request payloads.
	ErrInvalidRequest = core.ErrInvalidRequest
	// ErrMissingAPIKey indicates missing provider credentials.
	ErrMissingAPIKey = core.ErrMissingAPIKey
	// ErrEmptyResponse indicates a resolved call without any text.
	ErrEmptyResponse = core.ErrEmptyResponse
)

// NewGeminiProvider constructs the Gemini backend.
func NewGeminiProvider(cfg GeminiConfig) (*GeminiProvider, error) {
	return geminiprovider.New(cfg)
}

// NewAnthropicProvider constructs the Anthropic backend.
func NewAnthropicProvider(cfg AnthropicConfig) *AnthropicProvider {
	return anthropicprovider.New(cfg)
}
