package tui

import (
	"fmt"
	"strings"

	"bear/internal/persona"
	"bear/internal/state"
)

// StatusModel renders the top status bar.
type StatusModel struct {
	Version      string
	Mode         state.Mode
	State        string
	JournalCount int
}

// NewStatusModel constructs status data for rendering.
func NewStatusModel(version string, mode state.Mode) StatusModel {
	return StatusModel{
		Version: strings.TrimSpace(version),
		Mode:    mode,
		State:   "idle",
	}
}

// SetState updates the runtime state token.
func (m *StatusModel) SetState(state string) {
	m.State = strings.TrimSpace(state)
	if m.State == "" {
		m.State = "idle"
	}
}

// Render draws a one-line status bar.
func (m StatusModel) Render(width int, theme Theme) string {
	parts := []string{
		persona.AppName + " " + fallbackText(m.Version, "dev"),
		"subsystem: " + string(m.Mode),
		"state: " + fallbackText(m.State, "idle"),
	}
	if m.JournalCount > 0 {
		parts = append(parts, fmt.Sprintf("journal: %d", m.JournalCount))
	}
	line := strings.Join(parts, " | ")
	style := theme.StatusBarStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(line)
}

func fallbackText(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
