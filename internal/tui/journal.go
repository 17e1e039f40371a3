package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/state"
)

// journalAction is what a journal key press asks the app to do.
type journalAction int

const (
	journalNone journalAction = iota
	journalClose
	journalDelete
)

// JournalModel is the journal overlay: a cursor over persisted entries.
type JournalModel struct {
	entries []state.JournalEntry
	cursor  int
}

// NewJournalModel builds the overlay over the current entries.
func NewJournalModel(entries []state.JournalEntry) *JournalModel {
	return &JournalModel{entries: entries}
}

// SetEntries refreshes the list after a store mutation.
func (m *JournalModel) SetEntries(entries []state.JournalEntry) {
	m.entries = entries
	if m.cursor >= len(entries) {
		m.cursor = len(entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the entry under the cursor, if any.
func (m *JournalModel) Selected() (state.JournalEntry, bool) {
	if len(m.entries) == 0 {
		return state.JournalEntry{}, false
	}
	return m.entries[m.cursor], true
}

// HandleKey moves the cursor and reports the requested action.
func (m *JournalModel) HandleKey(msg tea.KeyMsg) journalAction {
	switch msg.Type {
	case tea.KeyEsc:
		return journalClose
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return journalNone
	case tea.KeyDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return journalNone
	}
	switch msg.String() {
	case "q":
		return journalClose
	case "d":
		if len(m.entries) > 0 {
			return journalDelete
		}
	}
	return journalNone
}

// Render draws the journal overlay panel.
func (m *JournalModel) Render(width int, theme Theme) string {
	lines := []string{
		theme.TitleStyle.Render("FIELD JOURNAL"),
		theme.SubtitleStyle.Render("↑/↓ navigate, d delete, Esc close"),
	}
	if len(m.entries) == 0 {
		lines = append(lines, "", "No entries logged yet. Use /journal <text>.")
		return renderPanel(width, theme.PanelStyle, strings.Join(lines, "\n"))
	}

	for index, entry := range m.entries {
		marker := "  "
		if index == m.cursor {
			marker = "> "
		}
		stamp := time.UnixMilli(entry.Timestamp).Format("Jan 2 15:04")
		header := marker + stamp + "  [" + string(entry.Mode) + "]"
		lines = append(lines, "", theme.SubtitleStyle.Render(header), "  "+entry.Content)
	}
	return renderPanel(width, theme.PanelStyle, strings.Join(lines, "\n"))
}
