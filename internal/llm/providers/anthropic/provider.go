// Package anthropicprovider wraps the official anthropic-sdk-go client
// behind the canonical Provider contract.
package anthropicprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"bear/internal/llm/core"
)

// Config configures the Anthropic provider.
type Config struct {
	APIKey     string
	BaseURL    string
	Version    string
	HTTPClient *http.Client
}

// Provider is a thin wrapper around the official anthropic-sdk-go client.
type Provider struct {
	apiKey string
	client anthropic.Client
}

// New constructs a provider with sane defaults.
func New(cfg Config) *Provider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	version := strings.TrimSpace(cfg.Version)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	clientOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0), // the core never retries model calls
	}
	if baseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(baseURL))
	}
	if version != "" {
		clientOptions = append(clientOptions, option.WithHeader("anthropic-version", version))
	}

	return &Provider{
		apiKey: apiKey,
		client: anthropic.NewClient(clientOptions...),
	}
}

// Generate executes a single non-streaming Messages API request.
func (p *Provider) Generate(ctx context.Context, req *core.Request) (*core.Response, error) {
	if p == nil {
		return nil, fmt.Errorf("anthropic provider is nil")
	}
	if strings.TrimSpace(p.apiKey) == "" {
		return nil, core.ErrMissingAPIKey
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := toMessageParams(req)
	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic generate: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return nil, core.ErrEmptyResponse
	}
	return &core.Response{Text: sb.String()}, nil
}

// toMessageParams converts a canonical request into SDK params. The active
// prompt becomes the final user message after the prior turns.
func toMessageParams(req *core.Request) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(req.History)+1)
	for _, turn := range req.History {
		block := anthropic.NewTextBlock(turn.Text)
		if turn.Role == core.RoleModel {
			messages = append(messages, anthropic.NewAssistantMessage(block))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(block))
	}
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.EffectiveMaxTokens()),
		Messages:  messages,
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}
	return params
}
