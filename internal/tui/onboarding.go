package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/onboarding"
	"bear/internal/state"
)

const (
	fieldName = iota
	fieldEmail
)

// OnboardingModel renders the calibration flow and feeds key presses into
// it. The chat surface stays locked until the flow commits.
type OnboardingModel struct {
	flow    *onboarding.Flow
	field   int
	errText string
}

// NewOnboardingModel wraps a calibration flow.
func NewOnboardingModel(flow *onboarding.Flow) *OnboardingModel {
	return &OnboardingModel{flow: flow}
}

// Done reports whether the flow has committed.
func (m *OnboardingModel) Done() bool {
	return m.flow.Done()
}

// HandleKey applies one key press. It reports whether this key completed
// the calibration.
func (m *OnboardingModel) HandleKey(msg tea.KeyMsg) (completed bool) {
	if m.flow.Done() {
		return false
	}

	if msg.Type == tea.KeyEnter {
		if err := m.flow.Advance(); err != nil {
			m.errText = onboarding.Message(err)
			return false
		}
		m.errText = ""
		m.field = fieldName
		return m.flow.Done()
	}

	if m.flow.Step() == 0 {
		m.handleFormKey(msg)
		return false
	}

	// Digits acknowledge the step's highlighted terms.
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		keywords := m.flow.Current().Keywords
		if idx := int(key[0] - '1'); idx < len(keywords) {
			m.flow.Acknowledge(keywords[idx].ID)
			m.errText = ""
		}
	}
	return false
}

func (m *OnboardingModel) handleFormKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown, tea.KeyUp:
		if m.field == fieldName {
			m.field = fieldEmail
		} else {
			m.field = fieldName
		}
		return
	case tea.KeyBackspace, tea.KeyDelete:
		m.editField(func(value string) string {
			runes := []rune(value)
			if len(runes) == 0 {
				return value
			}
			return string(runes[:len(runes)-1])
		})
		return
	case tea.KeySpace:
		m.editField(func(value string) string { return value + " " })
		return
	}
	if len(msg.Runes) > 0 {
		text := string(msg.Runes)
		m.editField(func(value string) string { return value + text })
	}
}

func (m *OnboardingModel) editField(apply func(string) string) {
	m.errText = ""
	if m.field == fieldName {
		m.flow.SetName(apply(m.flow.Name()))
		return
	}
	m.flow.SetEmail(apply(m.flow.Email()))
}

// Theme returns the palette matching the current step.
func (m *OnboardingModel) Theme() Theme {
	switch m.flow.Current().Theme {
	case onboarding.ThemeClaws:
		return ThemeFor(state.ModeClaws, "")
	default:
		return ThemeFor(state.ModePaws, "")
	}
}

// Render draws the full calibration screen.
func (m *OnboardingModel) Render(width int, theme Theme) string {
	step := m.flow.Current()

	lines := []string{
		m.renderProgress(theme),
		"",
		theme.TitleStyle.Render(step.Title),
		theme.SubtitleStyle.Render(step.Subtitle),
		"",
	}

	if m.flow.Step() == 0 {
		lines = append(lines, m.renderForm(theme)...)
	} else {
		lines = append(lines, m.renderBriefing(step, theme)...)
	}

	if m.errText != "" {
		lines = append(lines, "", theme.ErrorStyle.Render(m.errText))
	}

	label := "NEXT STEP"
	if m.flow.Step() == m.flow.StepCount()-1 {
		label = "INITIALIZE"
	}
	hint := "[Enter] " + label
	if !m.flow.CanAdvance() && m.flow.Step() > 0 {
		hint = onboarding.AckHint
	}
	lines = append(lines, "", theme.SubtitleStyle.Render(hint))

	return renderPanel(width, theme.PanelStyle, strings.Join(lines, "\n"))
}

func (m *OnboardingModel) renderProgress(theme Theme) string {
	marks := make([]string, 0, m.flow.StepCount())
	for i := 0; i < m.flow.StepCount(); i++ {
		switch {
		case i == m.flow.Step():
			marks = append(marks, "●")
		case i < m.flow.Step():
			marks = append(marks, "◐")
		default:
			marks = append(marks, "○")
		}
	}
	return theme.SubtitleStyle.Render(strings.Join(marks, " "))
}

func (m *OnboardingModel) renderForm(theme Theme) []string {
	nameMark, emailMark := "  ", "  "
	if m.field == fieldName {
		nameMark = "> "
	} else {
		emailMark = "> "
	}
	return []string{
		theme.NoticeStyle.Render(onboarding.RegistrationNote),
		"",
		theme.SubtitleStyle.Render("DESIGNATION (FIRST NAME)"),
		nameMark + renderFieldValue(m.flow.Name(), "e.g. Tabi", theme),
		"",
		theme.SubtitleStyle.Render("COMMUNICATION LINK (EMAIL)"),
		emailMark + renderFieldValue(m.flow.Email(), "user@example.com", theme),
		"",
		theme.SubtitleStyle.Render("Tab switches fields."),
	}
}

func (m *OnboardingModel) renderBriefing(step onboarding.Step, theme Theme) []string {
	lines := strings.Split(step.RenderBody(m.flow.Name()), "\n")
	if len(step.Keywords) == 0 {
		return lines
	}

	lines = append(lines, "")
	for index, kw := range step.Keywords {
		style := theme.KeywordStyle
		mark := fmt.Sprintf("[%d]", index+1)
		if m.flow.Acknowledged(kw.ID) {
			style = theme.KeywordAckedStyle
			mark = "[✓]"
		}
		lines = append(lines, mark+" "+style.Render(kw.Label))
	}
	return lines
}

func renderFieldValue(value, placeholder string, theme Theme) string {
	if strings.TrimSpace(value) == "" {
		return theme.InputPlaceholderTextStyle.Render(placeholder)
	}
	return theme.InputTextStyle.Render(value)
}
