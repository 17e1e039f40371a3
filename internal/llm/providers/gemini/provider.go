// Package geminiprovider wraps the Google GenAI SDK behind the canonical
// Provider contract.
package geminiprovider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"bear/internal/llm/core"
)

// Config configures the Gemini provider.
type Config struct {
	APIKey string
}

// Provider executes generate calls against the Gemini API.
type Provider struct {
	apiKey string
	client *genai.Client
}

// New constructs a provider and its underlying GenAI client.
func New(cfg Config) (*Provider, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, core.ErrMissingAPIKey
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Provider{apiKey: apiKey, client: client}, nil
}

// Generate sends the system instruction, prior turns, and active prompt as
// one request and returns the reply text.
func (p *Provider) Generate(ctx context.Context, req *core.Request) (*core.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, genai.NewContentFromText(turn.Text, roleFor(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.EffectiveMaxTokens()),
	}
	if strings.TrimSpace(req.System) != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature != nil {
		config.Temperature = ptrFloat32(float32(*req.Temperature))
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, core.ErrEmptyResponse
	}

	return &core.Response{Text: extractText(resp.Candidates[0].Content)}, nil
}

func roleFor(role core.Role) genai.Role {
	if role == core.RoleModel {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func extractText(content *genai.Content) string {
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func ptrFloat32(v float32) *float32 {
	return &v
}
