package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bear/internal/state"
)

// Theme contains style tokens used by the terminal UI. Each subsystem has
// its own palette; switching modes swaps the whole theme.
type Theme struct {
	Name                      string
	StatusBarStyle            lipgloss.Style
	PanelStyle                lipgloss.Style
	UserPrefixStyle           lipgloss.Style
	BearPrefixStyle           lipgloss.Style
	NoticeStyle               lipgloss.Style
	ErrorStyle                lipgloss.Style
	ReactionStyle             lipgloss.Style
	DistractionStyle          lipgloss.Style
	TitleStyle                lipgloss.Style
	SubtitleStyle             lipgloss.Style
	KeywordStyle              lipgloss.Style
	KeywordAckedStyle         lipgloss.Style
	InputPromptStyle          lipgloss.Style
	InputTextStyle            lipgloss.Style
	InputPlaceholderTextStyle lipgloss.Style
}

// ThemeFor returns the palette of the given subsystem. The name override
// from config picks the base variant; "auto" follows the mode.
func ThemeFor(mode state.Mode, name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "paws":
		return newPawsTheme()
	case "claws":
		return newClawsTheme()
	}
	if mode == state.ModeClaws {
		return newClawsTheme()
	}
	return newPawsTheme()
}

func newPawsTheme() Theme {
	accent := lipgloss.Color("137") // warm tan
	muted := lipgloss.Color("245")
	return Theme{
		Name: "paws",
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(accent).
			Padding(0, 1),
		PanelStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		UserPrefixStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		BearPrefixStyle:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		NoticeStyle:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		ErrorStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		ReactionStyle:     lipgloss.NewStyle().Foreground(muted),
		DistractionStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Faint(true),
		TitleStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true),
		SubtitleStyle:     lipgloss.NewStyle().Foreground(muted),
		KeywordStyle:      lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		KeywordAckedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		InputPromptStyle:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		InputTextStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		InputPlaceholderTextStyle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
	}
}

func newClawsTheme() Theme {
	accent := lipgloss.Color("196") // alarm red
	muted := lipgloss.Color("244")
	return Theme{
		Name: "claws",
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("52")).
			Padding(0, 1),
		PanelStyle: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		UserPrefixStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true),
		BearPrefixStyle:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		NoticeStyle:       lipgloss.NewStyle().Foreground(muted).Italic(true),
		ErrorStyle:        lipgloss.NewStyle().Foreground(accent),
		ReactionStyle:     lipgloss.NewStyle().Foreground(muted),
		DistractionStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Faint(true),
		TitleStyle:        lipgloss.NewStyle().Foreground(accent).Bold(true),
		SubtitleStyle:     lipgloss.NewStyle().Foreground(muted),
		KeywordStyle:      lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true),
		KeywordAckedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		InputPromptStyle:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		InputTextStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
		InputPlaceholderTextStyle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
	}
}
