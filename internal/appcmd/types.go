package appcmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/state"
)

// StateController is the command-facing slice of the session store.
type StateController interface {
	Snapshot() state.Snapshot
	SetMode(mode state.Mode) bool
	ClearMessages()
	SaveJournal(content string) state.JournalEntry
	ToggleReaction(messageID, emoji string) error
	PatchSettings(apply func(*state.Settings)) state.Settings
}

// CommandEnv provides adapter hooks so the command runtime stays
// UI-framework agnostic.
type CommandEnv struct {
	Store StateController

	// InFlight blocks the mutating commands while a send is unresolved.
	InFlight bool

	OpenJournal     func() tea.Cmd
	RefreshActions  func()
	Poke            func()
	SignIn          func(email string) tea.Cmd
	Celebrate       func() tea.Cmd
	ResetOnboarding func() tea.Cmd

	RebuildChat   func()
	RefreshStatus func()

	AppendNotice func(text string)
	AppendError  func(errText string)
}
