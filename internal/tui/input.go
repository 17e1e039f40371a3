package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputModel holds the single-line message buffer shown under the
// transcript. Slash commands and chat text share the same buffer.
type InputModel struct {
	prompt      string
	placeholder string
	value       string
}

// NewInputModel constructs the buffer with a prompt sigil and the
// persona placeholder.
func NewInputModel(prompt, placeholder string) InputModel {
	p := strings.TrimSpace(prompt)
	if p == "" {
		p = ">"
	}
	return InputModel{
		prompt:      p,
		placeholder: strings.TrimSpace(placeholder),
	}
}

// Value returns the raw buffer text.
func (m InputModel) Value() string {
	return m.value
}

// SetValue replaces the buffer text. Dictated transcripts land here.
func (m *InputModel) SetValue(value string) {
	m.value = value
}

// SetPlaceholder swaps the hint text shown while the buffer is empty.
func (m *InputModel) SetPlaceholder(placeholder string) {
	m.placeholder = strings.TrimSpace(placeholder)
}

// Clear empties the buffer after a submit.
func (m *InputModel) Clear() {
	m.value = ""
}

// HandleKey applies one key to the buffer and reports whether the
// user submitted it.
func (m *InputModel) HandleKey(msg tea.KeyMsg) (submitted bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return true
	case tea.KeyBackspace, tea.KeyDelete:
		if m.value == "" {
			return false
		}
		runes := []rune(m.value)
		m.value = string(runes[:len(runes)-1])
		return false
	case tea.KeySpace:
		m.value += " "
		return false
	}

	if len(msg.Runes) > 0 {
		m.value += string(msg.Runes)
	}
	return false
}

// Render draws the prompt line, falling back to the persona
// placeholder while the buffer is blank.
func (m InputModel) Render(width int, theme Theme) string {
	value := m.value
	valueStyle := theme.InputTextStyle
	if strings.TrimSpace(value) == "" {
		value = m.placeholder
		valueStyle = theme.InputPlaceholderTextStyle
	}

	line := theme.InputPromptStyle.Render(m.prompt+" ") + valueStyle.Render(value)
	if width > 0 {
		return lipgloss.NewStyle().Width(width).Render(line)
	}
	return line
}
