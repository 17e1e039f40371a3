// Package remote talks to an optional Supabase backend for magic-link
// sign-in. The app works fully offline; everything here is opt-in via
// settings.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured indicates no backend credentials are set.
var ErrNotConfigured = errors.New("remote backend not configured")

// NotConfiguredNotice is the copy shown when sign-in is attempted without
// credentials.
const NotConfiguredNotice = "Database Connection Not Configured. Please check Settings."

// Config configures the remote client.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client issues Supabase auth requests. Only the two endpoints the app
// needs are wrapped; there is no general API surface here.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient validates credentials and builds a client.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	apiKey := strings.TrimSpace(cfg.APIKey)
	if baseURL == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}, nil
}

// SignInWithEmail requests a magic-link OTP for the address. Delivery
// happens out of band; a nil error only means the request was accepted.
func (c *Client) SignInWithEmail(ctx context.Context, email string) error {
	payload, err := json.Marshal(map[string]any{
		"email":       email,
		"create_user": true,
	})
	if err != nil {
		return fmt.Errorf("encode otp request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/otp", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build otp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send otp request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("otp request failed: %s", readAPIError(resp.Body, resp.Status))
	}
	return nil
}

// Health pings the auth health endpoint to validate the credentials.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check failed: %s", readAPIError(resp.Body, resp.Status))
	}
	return nil
}

// readAPIError pulls a message out of a Supabase error body, falling back
// to the HTTP status line.
func readAPIError(body io.Reader, status string) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return status
	}
	var parsed struct {
		Message  string `json:"message"`
		Msg      string `json:"msg"`
		ErrorDsc string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		for _, msg := range []string{parsed.Message, parsed.Msg, parsed.ErrorDsc} {
			if msg != "" {
				return msg
			}
		}
	}
	return status
}
