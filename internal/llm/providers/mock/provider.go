// Package mockprovider returns scripted responses for deterministic tests.
package mockprovider

import (
	"context"
	"sync"
	"time"

	"bear/internal/llm/core"
)

// Provider answers every Generate call with the scripted response or error.
type Provider struct {
	// Response is returned on success.
	Response string
	// Err, when set, fails every call.
	Err error
	// Delay postpones the reply, honoring context cancellation.
	Delay time.Duration
	// Gate, when set, blocks Generate until the channel is closed. Used to
	// hold a call in flight from tests.
	Gate chan struct{}

	mu       sync.Mutex
	requests []core.Request
}

// Generate records the request and replies per script.
func (m *Provider) Generate(ctx context.Context, req *core.Request) (*core.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	recorded := *req
	recorded.History = req.CloneHistory()
	m.requests = append(m.requests, recorded)
	m.mu.Unlock()

	if m.Gate != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.Gate:
		}
	}
	if m.Delay > 0 {
		timer := time.NewTimer(m.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return &core.Response{Text: m.Response}, nil
}

// Requests returns a copy of all recorded requests.
func (m *Provider) Requests() []core.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.Request(nil), m.requests...)
}

// LastRequest returns the most recent recorded request, if any.
func (m *Provider) LastRequest() (core.Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return core.Request{}, false
	}
	return m.requests[len(m.requests)-1], true
}
