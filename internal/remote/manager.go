package remote

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager holds the live remote client, if any. Settings changes swap the
// client in place; the rest of the app keeps one Manager reference.
type Manager struct {
	log *zap.Logger

	mu      sync.Mutex
	client  *Client
	baseURL string
	apiKey  string
}

// NewManager creates an unconfigured manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log}
}

// Configure builds a client from credentials. Re-applying unchanged
// credentials is a no-op; bad credentials leave the previous client in
// place and only log.
func (m *Manager) Configure(baseURL, apiKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if baseURL == m.baseURL && apiKey == m.apiKey && m.client != nil {
		return
	}

	client, err := NewClient(Config{BaseURL: baseURL, APIKey: apiKey})
	if err != nil {
		m.log.Warn("remote backend not configured", zap.Error(err))
		return
	}

	m.client = client
	m.baseURL = baseURL
	m.apiKey = apiKey
	m.log.Info("remote backend configured", zap.String("base_url", baseURL))
}

// Configured reports whether a client is live.
func (m *Manager) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client != nil
}

// SignIn requests a magic link through the live client.
func (m *Manager) SignIn(ctx context.Context, email string) error {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client == nil {
		return ErrNotConfigured
	}
	if err := client.SignInWithEmail(ctx, email); err != nil {
		m.log.Warn("remote sign-in failed", zap.Error(err))
		return err
	}
	m.log.Info("magic link requested")
	return nil
}

// Check validates the live client against the backend.
func (m *Manager) Check(ctx context.Context) error {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	if client == nil {
		return ErrNotConfigured
	}
	return client.Health(ctx)
}
