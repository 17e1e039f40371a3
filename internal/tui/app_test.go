package tui

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/chat"
	"bear/internal/engage"
	"bear/internal/onboarding"
	"bear/internal/state"
)

type stubSender struct {
	mu       sync.Mutex
	store    *state.Store
	reply    string
	visible  []string
	hidden   []string
	inFlight bool
}

func (s *stubSender) Send(_ context.Context, visibleText, hiddenPrompt string) (state.Message, error) {
	s.mu.Lock()
	s.visible = append(s.visible, visibleText)
	s.hidden = append(s.hidden, hiddenPrompt)
	s.mu.Unlock()

	s.store.AppendMessage(state.Message{Role: state.RoleUser, Text: visibleText})
	return s.store.AppendMessage(state.Message{
		Role: state.RoleModel,
		Text: s.reply,
		Mode: s.store.Snapshot().Mode,
	}), nil
}

func (s *stubSender) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func newTestApp(t *testing.T) (*App, *state.Store, *stubSender) {
	t.Helper()
	store, err := state.Open(state.Config{
		Path: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("state.Open() error = %v", err)
	}
	store.SetOnboarded(true)

	sender := &stubSender{store: store, reply: "mrrr"}
	app := NewApp(AppConfig{
		Version: "test",
		Store:   store,
		Sender:  sender,
		Sampler: engage.NewSampler(rand.New(rand.NewSource(1))),
	})
	return app, store, sender
}

func typeString(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func submit(t *testing.T, app *App) tea.Cmd {
	t.Helper()
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func runCmd(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			return
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, sub := range batch {
				runCmd(t, app, sub)
			}
			return
		}
		_, cmd = app.Update(msg)
	}
}

func TestSendRoundTripUpdatesTranscript(t *testing.T) {
	t.Parallel()

	app, store, sender := newTestApp(t)
	typeString(app, "hello bear")
	cmd := submit(t, app)
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	runCmd(t, app, cmd)

	if len(sender.visible) != 1 || sender.visible[0] != "hello bear" {
		t.Fatalf("visible sends = %v", sender.visible)
	}
	if n := len(store.Snapshot().Messages); n != 2 {
		t.Fatalf("len(Messages) = %d, want 2", n)
	}
	view := app.View()
	if !strings.Contains(view, "hello bear") || !strings.Contains(view, "mrrr") {
		t.Fatalf("view missing round trip:\n%s", view)
	}
}

func TestQuickActionDigitSendsHiddenDirective(t *testing.T) {
	t.Parallel()

	app, _, sender := newTestApp(t)

	// Empty transcript shows the deck; digit 1 fires its first entry.
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	if cmd == nil {
		t.Fatal("digit produced no command")
	}
	runCmd(t, app, cmd)

	if len(sender.hidden) != 1 {
		t.Fatalf("hidden sends = %d, want 1", len(sender.hidden))
	}
	if !strings.Contains(sender.hidden[0], "[SYSTEM: IGNORE PREVIOUS CACHED PATTERNS.") {
		t.Fatalf("hidden prompt = %q, want steering directive", sender.hidden[0])
	}
	if strings.Contains(sender.visible[0], "[SYSTEM:") {
		t.Fatalf("visible prompt leaked the directive: %q", sender.visible[0])
	}
}

func TestDigitsIgnoredOncePopulated(t *testing.T) {
	t.Parallel()

	app, store, sender := newTestApp(t)
	store.AppendMessage(state.Message{Role: state.RoleUser, Text: "already chatting"})
	app.refreshFromStore()

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	runCmd(t, app, cmd)

	if len(sender.visible) != 0 {
		t.Fatalf("visible sends = %v, want none", sender.visible)
	}
	// The digit went into the input buffer instead.
	if app.input.Value() != "1" {
		t.Fatalf("input = %q, want %q", app.input.Value(), "1")
	}
}

func TestModeCommandShowsHandoffScreen(t *testing.T) {
	t.Parallel()

	app, store, _ := newTestApp(t)
	typeString(app, "/mode claws")
	cmd := submit(t, app)

	if store.Snapshot().Mode != state.ModeClaws {
		t.Fatalf("Mode = %q, want CLAWS", store.Snapshot().Mode)
	}
	view := app.View()
	if !strings.Contains(view, "SUBSYSTEM HANDOFF") || !strings.Contains(view, "C.L.A.W.S.") {
		t.Fatalf("view is not the handoff screen:\n%s", view)
	}

	runCmd(t, app, cmd)
	if app.transition {
		t.Fatal("transition still active after teardown tick")
	}
	if app.theme.Name != "claws" {
		t.Fatalf("theme = %q, want claws", app.theme.Name)
	}
}

func TestPokeToastAppearsAndClears(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)

	var cmd tea.Cmd
	for i := 0; i < 3; i++ {
		_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	}
	if cmd == nil {
		t.Fatal("third poke produced no toast command")
	}
	if !strings.Contains(app.View(), "napping") {
		t.Fatalf("view missing poke toast:\n%s", app.View())
	}

	app.Update(pokeClearMsg{})
	if strings.Contains(app.View(), "napping") {
		t.Fatal("toast survived the clear tick")
	}
}

func TestJournalOverlayLifecycle(t *testing.T) {
	t.Parallel()

	app, store, _ := newTestApp(t)
	store.SaveJournal("first entry")
	store.SaveJournal("second entry")
	app.refreshFromStore()

	typeString(app, "/journal")
	submit(t, app)
	if app.journal == nil {
		t.Fatal("journal overlay did not open")
	}
	view := app.View()
	if !strings.Contains(view, "FIELD JOURNAL") || !strings.Contains(view, "second entry") {
		t.Fatalf("journal view incomplete:\n%s", view)
	}

	// Delete the entry under the cursor, then close.
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if n := len(store.Snapshot().Journal); n != 1 {
		t.Fatalf("len(Journal) = %d after delete, want 1", n)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.journal != nil {
		t.Fatal("journal overlay did not close")
	}
}

func TestLosingSendStaysSilent(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)

	// A send that lost the single-slot race must not leave a trace.
	app.Update(sendResultMsg{Err: chat.ErrSendInFlight})
	if strings.Contains(app.View(), "severed") {
		t.Fatalf("slot rejection surfaced as a transport failure:\n%s", app.View())
	}

	// A genuine transport failure still surfaces the fallback line.
	app.Update(sendResultMsg{Err: errors.New("connection reset")})
	if !strings.Contains(app.View(), chat.FallbackTransport) {
		t.Fatalf("transport failure not surfaced:\n%s", app.View())
	}
}

func TestTranscriptMsgFeedsInputBuffer(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApp(t)
	typeString(app, "feeling")
	app.Update(TranscriptMsg{Text: "a bit better today"})

	if got := app.input.Value(); got != "feeling a bit better today" {
		t.Fatalf("input = %q, want dictated text appended", got)
	}

	app.Update(TranscriptMsg{Text: "   "})
	if got := app.input.Value(); got != "feeling a bit better today" {
		t.Fatalf("input = %q after blank transcript, want unchanged", got)
	}
}

func TestJournalSaveShowsCelebration(t *testing.T) {
	t.Parallel()

	app, store, _ := newTestApp(t)
	typeString(app, "/journal small victory")
	cmd := submit(t, app)

	if len(store.Snapshot().Journal) != 1 {
		t.Fatalf("len(Journal) = %d, want 1", len(store.Snapshot().Journal))
	}
	if !strings.Contains(app.View(), "ENTRY SECURED") {
		t.Fatalf("view missing celebration overlay:\n%s", app.View())
	}

	runCmd(t, app, cmd)
	if strings.Contains(app.View(), "ENTRY SECURED") {
		t.Fatal("celebration overlay never cleared")
	}
}

func TestRecalibrateReopensOnboarding(t *testing.T) {
	t.Parallel()

	app, store, _ := newTestApp(t)
	typeString(app, "/recalibrate")
	cmd := submit(t, app)
	runCmd(t, app, cmd)

	if store.Snapshot().Onboarded {
		t.Fatal("store still marked onboarded after recalibrate")
	}
	if !strings.Contains(app.View(), "IDENTITY REQUIRED") {
		t.Fatalf("view is not the calibration screen:\n%s", app.View())
	}
}

func TestIdleBannerOnEmptyTranscript(t *testing.T) {
	t.Parallel()

	app, store, _ := newTestApp(t)
	if !strings.Contains(app.View(), "Vital signs stable") {
		t.Fatalf("view missing idle banner:\n%s", app.View())
	}

	store.AppendMessage(state.Message{Role: state.RoleUser, Text: "hello"})
	app.refreshFromStore()
	if strings.Contains(app.View(), "Vital signs stable") {
		t.Fatal("idle banner shown on a populated transcript")
	}
}

func TestOnboardingGateBlocksChat(t *testing.T) {
	t.Parallel()

	store, err := state.Open(state.Config{
		Path: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("state.Open() error = %v", err)
	}

	sender := &stubSender{store: store, reply: "mrrr"}
	app := NewApp(AppConfig{
		Store:   store,
		Sender:  sender,
		Sampler: engage.NewSampler(rand.New(rand.NewSource(1))),
		Flow:    onboarding.NewFlow(store),
	})

	if !strings.Contains(app.View(), "IDENTITY REQUIRED") {
		t.Fatalf("view is not the calibration screen:\n%s", app.View())
	}

	// Typed text feeds the registration form, not the chat.
	typeString(app, "Riley")
	submit(t, app)
	if len(sender.visible) != 0 {
		t.Fatalf("send fired during calibration: %v", sender.visible)
	}
	if !strings.Contains(app.View(), "Valid email format required.") {
		t.Fatalf("missing email validation copy:\n%s", app.View())
	}
}

func TestOnboardingCompletionUnlocksChat(t *testing.T) {
	t.Parallel()

	store, err := state.Open(state.Config{
		Path: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("state.Open() error = %v", err)
	}

	flow := onboarding.NewFlow(store)
	app := NewApp(AppConfig{
		Store:   store,
		Sender:  &stubSender{store: store, reply: "ok"},
		Sampler: engage.NewSampler(rand.New(rand.NewSource(1))),
		Flow:    flow,
	})

	typeString(app, "Riley")
	app.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeString(app, "riley@example.com")
	submit(t, app)

	var cmd tea.Cmd
	for !flow.Done() {
		for i := range flow.Current().Keywords {
			app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + i)}})
		}
		_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}

	snap := store.Snapshot()
	if !snap.Onboarded || snap.User == nil || snap.User.Name != "Riley" {
		t.Fatalf("profile not committed: %+v", snap)
	}
	if !strings.Contains(app.View(), "CALIBRATION COMPLETE") {
		t.Fatalf("missing celebration view:\n%s", app.View())
	}

	// The celebration tick hands control to the chat surface.
	runCmd(t, app, cmd)
	if strings.Contains(app.View(), "CALIBRATION COMPLETE") {
		t.Fatal("celebration never ended")
	}
}
