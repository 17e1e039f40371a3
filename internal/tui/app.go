package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bear/internal/appcmd"
	"bear/internal/chat"
	"bear/internal/engage"
	"bear/internal/onboarding"
	"bear/internal/persona"
	"bear/internal/remote"
	"bear/internal/state"
)

const (
	defaultAppWidth = 100

	pokeToastDuration   = 3 * time.Second
	celebrationDuration = 2 * time.Second
	transitionDuration  = 1 * time.Second
)

// Sender runs one conversational round trip.
type Sender interface {
	Send(ctx context.Context, visibleText, hiddenPrompt string) (state.Message, error)
	InFlight() bool
}

// AppConfig configures the root BubbleTea model.
type AppConfig struct {
	Version   string
	ThemeName string
	Store     *state.Store
	Sender    Sender
	Sampler   *engage.Sampler
	Remote    *remote.Manager
	// Flow, when non-nil, locks the chat surface behind calibration.
	Flow   *onboarding.Flow
	Logger *zap.Logger
}

// TranscriptMsg carries dictated text from an external speech capture
// process into the pending input buffer.
type TranscriptMsg struct {
	Text string
}

type sendResultMsg struct {
	Err error
}

type signInResultMsg struct {
	Err error
}

type pokeClearMsg struct{}

type celebrationDoneMsg struct{}

type transitionDoneMsg struct{}

// App is the root TUI model.
type App struct {
	themeName string
	theme     Theme
	log       *zap.Logger

	store   *state.Store
	sender  Sender
	sampler *engage.Sampler
	remote  *remote.Manager

	width  int
	height int

	status  StatusModel
	chat    ChatModel
	input   InputModel
	journal *JournalModel
	onboard *OnboardingModel

	actions []engage.Action
	poke    engage.PokeCounter

	pokeToast           string
	celebrating         bool
	celebrationTitle    string
	celebrationBody     string
	transitionTo        state.Mode
	transition          bool
	transitionScheduled bool
}

// NewApp constructs the root TUI model with defaults.
func NewApp(cfg AppConfig) *App {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	snap := cfg.Store.Snapshot()
	model := &App{
		themeName: strings.TrimSpace(cfg.ThemeName),
		theme:     ThemeFor(snap.Mode, cfg.ThemeName),
		log:       log,
		store:     cfg.Store,
		sender:    cfg.Sender,
		sampler:   cfg.Sampler,
		remote:    cfg.Remote,
		status:    NewStatusModel(cfg.Version, snap.Mode),
		chat:      NewChatModel(0),
		input:     NewInputModel(">", persona.Placeholder(snap.Mode)),
	}
	if cfg.Flow != nil && !snap.Onboarded {
		model.onboard = NewOnboardingModel(cfg.Flow)
	}
	if cfg.Sampler != nil {
		model.actions = cfg.Sampler.Deal()
	}

	model.width = defaultAppWidth
	model.status.JournalCount = len(snap.Journal)
	model.chat.Rebuild(snap.Messages)
	return model
}

// Init starts background commands if needed.
func (m *App) Init() tea.Cmd {
	return nil
}

// Update applies state changes from user input and runtime events.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.SetViewportHeight(m.chatViewportHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TranscriptMsg:
		if text := strings.TrimSpace(msg.Text); text != "" {
			m.input.SetValue(m.input.Value() + " " + text)
		}
		return m, nil

	case sendResultMsg:
		m.refreshFromStore()
		m.status.SetState("idle")
		// A send that lost the single-slot race is dropped quietly. Only
		// real transport failures surface to the transcript.
		if msg.Err != nil && !errors.Is(msg.Err, chat.ErrSendInFlight) {
			m.chat.AppendError(chat.FallbackTransport)
			m.log.Warn("send failed", zap.Error(msg.Err))
		}
		return m, m.transitionCmd()

	case signInResultMsg:
		if msg.Err != nil {
			m.chat.AppendError("Sign-in failed: " + msg.Err.Error())
			return m, nil
		}
		m.chat.AppendNotice("Magic link requested. Check your inbox.")
		return m, nil

	case pokeClearMsg:
		m.pokeToast = ""
		return m, nil

	case celebrationDoneMsg:
		m.celebrating = false
		m.refreshFromStore()
		return m, nil

	case transitionDoneMsg:
		m.transition = false
		m.transitionScheduled = false
		return m, nil
	}

	return m, nil
}

// View renders the active surface.
func (m *App) View() string {
	width := m.width
	if width <= 0 {
		width = defaultAppWidth
	}

	if m.onboard != nil && !m.onboard.Done() {
		return m.onboard.Render(width, m.onboard.Theme())
	}
	if m.celebrating {
		theme := m.theme
		return renderPanel(width, theme.PanelStyle, strings.Join([]string{
			theme.TitleStyle.Render(m.celebrationTitle),
			"",
			"🎉  " + m.celebrationBody + "  🎉",
		}, "\n"))
	}
	if m.transition {
		theme := ThemeFor(m.transitionTo, m.themeName)
		label := "P.A.W.S."
		if m.transitionTo == state.ModeClaws {
			label = "C.L.A.W.S."
		}
		return renderPanel(width, theme.PanelStyle, strings.Join([]string{
			theme.TitleStyle.Render("SUBSYSTEM HANDOFF"),
			"",
			"Routing to " + label + "...",
		}, "\n"))
	}

	statusLine := m.status.Render(width, m.theme)
	var body string
	if m.journal != nil {
		body = m.journal.Render(width, m.theme)
	} else {
		m.chat.SetViewportHeight(m.chatViewportHeight())
		body = m.chat.Render(width, m.theme)
	}

	sections := []string{statusLine, body}
	if m.pokeToast != "" {
		sections = append(sections, m.theme.NoticeStyle.Render("🐻 "+m.pokeToast))
	}
	if m.journal == nil && len(m.store.Snapshot().Messages) == 0 {
		sections = append(sections, m.theme.NoticeStyle.Render(persona.IdleNotice(m.status.Mode)))
		if len(m.actions) > 0 {
			sections = append(sections, m.renderQuickActions(width))
		}
	}
	sections = append(sections, m.input.Render(width, m.theme))
	return strings.Join(sections, "\n")
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.onboard != nil && !m.onboard.Done() {
		if completed := m.onboard.HandleKey(msg); completed {
			m.onboard = nil
			m.refreshFromStore()
			return m, m.celebrate("CALIBRATION COMPLETE", "The engine is online.")
		}
		return m, nil
	}
	if m.celebrating || m.transition {
		return m, nil
	}

	if m.journal != nil {
		return m.handleJournalKey(msg)
	}

	switch msg.String() {
	case "ctrl+p":
		return m, m.pokeBear()
	case "ctrl+r":
		m.refreshActions()
		return m, nil
	}

	if m.handleChatScrollKey(msg) {
		return m, nil
	}

	// Digits trigger quick actions while the transcript is empty.
	if key := msg.String(); len(key) == 1 && key[0] >= '1' && key[0] <= '9' &&
		strings.TrimSpace(m.input.Value()) == "" &&
		len(m.store.Snapshot().Messages) == 0 {
		if idx := int(key[0] - '1'); idx < len(m.actions) {
			return m, m.sendQuickAction(m.actions[idx])
		}
	}

	if submitted := m.input.HandleKey(msg); submitted {
		content := strings.TrimSpace(m.input.Value())
		m.input.Clear()
		return m, m.handleInputSubmit(content)
	}
	return m, nil
}

func (m *App) handleJournalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.journal.HandleKey(msg) {
	case journalClose:
		m.journal = nil
	case journalDelete:
		if entry, ok := m.journal.Selected(); ok {
			m.store.DeleteJournalEntry(entry.ID)
			snap := m.store.Snapshot()
			m.journal.SetEntries(snap.Journal)
			m.status.JournalCount = len(snap.Journal)
		}
	}
	return m, nil
}

func (m *App) handleInputSubmit(content string) tea.Cmd {
	if content == "" {
		return nil
	}
	if strings.HasPrefix(content, "/") {
		return m.handleSlashCommand(content)
	}
	return m.sendMessage(content, "")
}

func (m *App) handleSlashCommand(content string) tea.Cmd {
	var pokeCmd tea.Cmd
	cmd := appcmd.ExecuteSlashCommand(content, appcmd.CommandEnv{
		Store:    m.store,
		InFlight: m.sender != nil && m.sender.InFlight(),
		OpenJournal: func() tea.Cmd {
			snap := m.store.Snapshot()
			m.journal = NewJournalModel(snap.Journal)
			return nil
		},
		RefreshActions: func() {
			m.refreshActions()
		},
		Poke: func() {
			pokeCmd = m.pokeBear()
		},
		SignIn: func(email string) tea.Cmd {
			return m.signInCommand(email)
		},
		Celebrate: func() tea.Cmd {
			return m.celebrate("ENTRY SECURED", "Logged to the field journal.")
		},
		ResetOnboarding: func() tea.Cmd {
			m.store.ResetOnboarding()
			m.onboard = NewOnboardingModel(onboarding.NewFlow(m.store))
			return nil
		},
		RebuildChat: func() {
			m.refreshFromStore()
		},
		RefreshStatus: func() {
			m.refreshFromStore()
		},
		AppendNotice: func(text string) {
			m.chat.AppendNotice(text)
		},
		AppendError: func(errText string) {
			m.chat.AppendError(errText)
		},
	})
	return tea.Batch(cmd, pokeCmd, m.transitionCmd())
}

func (m *App) celebrate(title, body string) tea.Cmd {
	m.celebrating = true
	m.celebrationTitle = title
	m.celebrationBody = body
	return tea.Tick(celebrationDuration, func(time.Time) tea.Msg {
		return celebrationDoneMsg{}
	})
}

// transitionCmd schedules the handoff screen teardown exactly once per
// mode switch.
func (m *App) transitionCmd() tea.Cmd {
	if !m.transition || m.transitionScheduled {
		return nil
	}
	m.transitionScheduled = true
	return tea.Tick(transitionDuration, func(time.Time) tea.Msg {
		return transitionDoneMsg{}
	})
}

func (m *App) sendQuickAction(action engage.Action) tea.Cmd {
	if m.sampler == nil {
		return m.sendMessage(action.Prompt, "")
	}
	mode := m.store.Snapshot().Mode
	visible, hidden := m.sampler.Compose(action, mode)
	return m.sendMessage(visible, hidden)
}

func (m *App) sendMessage(visible, hidden string) tea.Cmd {
	if m.sender == nil {
		m.chat.AppendError("model provider is not configured")
		return nil
	}
	if m.sender.InFlight() {
		// One slot only. Extra sends are dropped without ceremony.
		return nil
	}

	m.chat.AppendUser(visible)
	m.status.SetState("thinking")
	sender := m.sender
	return func() tea.Msg {
		_, err := sender.Send(context.Background(), visible, hidden)
		return sendResultMsg{Err: err}
	}
}

func (m *App) signInCommand(email string) tea.Cmd {
	if m.remote == nil {
		m.chat.AppendError(remote.NotConfiguredNotice)
		return nil
	}
	mgr := m.remote
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return signInResultMsg{Err: mgr.SignIn(ctx, email)}
	}
}

func (m *App) pokeBear() tea.Cmd {
	mode := m.store.Snapshot().Mode
	reaction, ok := m.poke.Poke(mode)
	if !ok {
		return nil
	}
	m.pokeToast = reaction
	return tea.Tick(pokeToastDuration, func(time.Time) tea.Msg {
		return pokeClearMsg{}
	})
}

func (m *App) refreshActions() {
	if m.sampler != nil {
		m.actions = m.sampler.Deal()
	}
}

// refreshFromStore re-reads the snapshot and realigns theme, status, and
// transcript. The mode handoff screen triggers only on an actual switch.
func (m *App) refreshFromStore() {
	snap := m.store.Snapshot()
	if snap.Mode != m.status.Mode {
		m.transitionTo = snap.Mode
		m.transition = true
	}
	m.status.Mode = snap.Mode
	m.status.JournalCount = len(snap.Journal)
	m.theme = ThemeFor(snap.Mode, m.themeName)
	m.input.SetPlaceholder(persona.Placeholder(snap.Mode))
	m.chat.Rebuild(snap.Messages)
	if m.journal != nil {
		m.journal.SetEntries(snap.Journal)
	}
}

func (m *App) renderQuickActions(width int) string {
	lines := make([]string, 0, len(m.actions)+1)
	lines = append(lines, m.theme.SubtitleStyle.Render("QUICK ACTIONS (press number, ctrl+r reshuffles)"))
	for index, action := range m.actions {
		lines = append(lines, fmt.Sprintf("%d. %s", index+1, action.Label))
	}
	return renderPanel(width, m.theme.PanelStyle, strings.Join(lines, "\n"))
}

func (m *App) handleChatScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		m.chat.ScrollUp(1)
		return true
	case tea.KeyDown:
		m.chat.ScrollDown(1)
		return true
	case tea.KeyPgUp:
		m.chat.PageUp()
		return true
	case tea.KeyPgDown:
		m.chat.PageDown()
		return true
	case tea.KeyHome:
		m.chat.ScrollToTop()
		return true
	case tea.KeyEnd:
		m.chat.ScrollToBottom()
		return true
	default:
		return false
	}
}

func (m *App) chatViewportHeight() int {
	if m.height <= 0 {
		return 0
	}

	const nonBodyRows = 2 // status + input
	bodyHeight := m.height - nonBodyRows
	if bodyHeight < 1 {
		return 1
	}

	contentHeight := bodyHeight - m.theme.PanelStyle.GetVerticalFrameSize()
	if contentHeight < 1 {
		return 1
	}
	return contentHeight
}
