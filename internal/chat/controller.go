// Package chat orchestrates one conversational round trip: append the user
// turn, call the model under the active persona, append the tagged reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"bear/internal/llm"
	"bear/internal/persona"
	"bear/internal/state"
)

// Fallback strings surfaced to the user when the model call misbehaves.
const (
	// FallbackEmptyReply is appended as the reply when the call resolves
	// with no text at all.
	FallbackEmptyReply = "Subsystem Error: Empty response buffer."
	// FallbackTransport is shown as a notice when the call fails; no reply
	// is appended in that case.
	FallbackTransport = "Connection to Bear Mainframe severed. Please try again."
)

const defaultCallTimeout = 60 * time.Second

var (
	// ErrSendInFlight indicates a second send while one is unresolved.
	// Callers drop the attempt silently; there is no queue.
	ErrSendInFlight = errors.New("send already in flight")
	// ErrProviderRequired indicates missing model provider dependency.
	ErrProviderRequired = errors.New("provider is required")
	// ErrStoreRequired indicates missing session store dependency.
	ErrStoreRequired = errors.New("store is required")
	// ErrModelRequired indicates missing model name.
	ErrModelRequired = errors.New("model is required")
)

// Config configures Controller creation.
type Config struct {
	Store       *state.Store
	Provider    llm.Provider
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout bounds one model round trip so a hung call cannot hold the
	// in-flight slot forever. Zero means the 60s default.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Controller owns the single-slot send lock and the model round trip.
type Controller struct {
	store       *state.Store
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
	timeout     time.Duration
	log         *zap.Logger

	mu       sync.Mutex
	inFlight bool
}

// New creates a controller with explicit dependencies.
func New(cfg Config) (*Controller, error) {
	if cfg.Store == nil {
		return nil, ErrStoreRequired
	}
	if cfg.Provider == nil {
		return nil, ErrProviderRequired
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, ErrModelRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Controller{
		store:       cfg.Store,
		provider:    cfg.Provider,
		model:       strings.TrimSpace(cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		log:         log,
	}, nil
}

// InFlight reports whether a send is currently unresolved.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Send runs one round trip. visibleText is what the user typed and what
// gets persisted; hiddenPrompt, when non-empty, is what the model sees
// instead (quick actions append a steering directive this way). The reply
// is tagged with the mode active now, not the mode at arrival time.
//
// Empty text and concurrent sends are rejected before any state mutation.
// On model failure no reply is appended; the user turn stays in the
// transcript and the error is returned for a one-off notice.
func (c *Controller) Send(ctx context.Context, visibleText, hiddenPrompt string) (state.Message, error) {
	visible := strings.TrimSpace(visibleText)
	if visible == "" {
		return state.Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return state.Message{}, ErrSendInFlight
	}
	c.inFlight = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	// The user turn is visible immediately, before the round trip resolves.
	c.store.AppendMessage(state.Message{
		Role: state.RoleUser,
		Text: visibleText,
	})

	snap := c.store.Snapshot()
	mode := snap.Mode // captured at send time; reply tagging ignores later switches

	prompt := hiddenPrompt
	if strings.TrimSpace(prompt) == "" {
		prompt = visibleText
	}
	payload, err := BuildPayload(snap.Messages, prompt)
	if err != nil {
		return state.Message{}, err
	}

	temperature := c.temperature
	req := &llm.Request{
		Model:       c.model,
		System:      persona.Resolve(mode, snap.User),
		History:     payload.Prior,
		Prompt:      payload.Prompt,
		Temperature: &temperature,
		MaxTokens:   c.maxTokens,
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.provider.Generate(callCtx, req)
	if err != nil {
		c.log.Warn("model call failed",
			zap.String("mode", string(mode)),
			zap.Error(err))
		return state.Message{}, fmt.Errorf("generate reply: %w", err)
	}

	text := resp.Text
	if strings.TrimSpace(text) == "" {
		text = FallbackEmptyReply
	}

	reply := c.store.AppendMessage(state.Message{
		Role: state.RoleModel,
		Text: text,
		Mode: mode,
	})
	return reply, nil
}
