package appcmd

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/state"
)

type capture struct {
	notices []string
	errors  []string
}

func newTestEnv(t *testing.T) (*state.Store, *capture, CommandEnv) {
	t.Helper()
	store, err := state.Open(state.Config{
		Path: filepath.Join(t.TempDir(), "state.json"),
	})
	if err != nil {
		t.Fatalf("state.Open() error = %v", err)
	}

	out := &capture{}
	env := CommandEnv{
		Store:        store,
		AppendNotice: func(text string) { out.notices = append(out.notices, text) },
		AppendError:  func(text string) { out.errors = append(out.errors, text) },
	}
	return store, out, env
}

func (c *capture) lastNotice(t *testing.T) string {
	t.Helper()
	if len(c.notices) == 0 {
		t.Fatal("no notices captured")
	}
	return c.notices[len(c.notices)-1]
}

func (c *capture) lastError(t *testing.T) string {
	t.Helper()
	if len(c.errors) == 0 {
		t.Fatal("no errors captured")
	}
	return c.errors[len(c.errors)-1]
}

func TestHelpListsCommands(t *testing.T) {
	t.Parallel()

	_, out, env := newTestEnv(t)
	ExecuteSlashCommand("/help", env)

	help := out.lastNotice(t)
	for _, want := range []string{"/mode", "/journal", "/react", "/clear", "/poke", "/login", "/set"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestModeCommand(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)

	ExecuteSlashCommand("/mode", env)
	if got := out.lastNotice(t); !strings.Contains(got, "PAWS") {
		t.Fatalf("bare /mode = %q, want active subsystem", got)
	}

	ExecuteSlashCommand("/mode claws", env)
	if store.Snapshot().Mode != state.ModeClaws {
		t.Fatalf("Mode = %q, want CLAWS", store.Snapshot().Mode)
	}

	ExecuteSlashCommand("/mode claws", env)
	if got := out.lastNotice(t); !strings.Contains(got, "already active") {
		t.Fatalf("redundant switch notice = %q", got)
	}

	ExecuteSlashCommand("/mode shark", env)
	if got := out.lastError(t); !strings.Contains(got, "usage") {
		t.Fatalf("invalid mode error = %q", got)
	}
}

func TestModeSwitchAllowedWhileInFlight(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)
	env.InFlight = true

	ExecuteSlashCommand("/mode claws", env)
	if store.Snapshot().Mode != state.ModeClaws {
		t.Fatalf("Mode = %q, want CLAWS despite in-flight send", store.Snapshot().Mode)
	}
	if got := out.lastNotice(t); !strings.Contains(got, "switched") {
		t.Fatalf("notice = %q, want switch confirmation", got)
	}
	if len(out.errors) != 0 {
		t.Fatalf("errors = %v, want none", out.errors)
	}
}

func TestJournalCommandSavesEntry(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)
	store.SetMode(state.ModeClaws)

	ExecuteSlashCommand("/journal today was loud", env)
	entries := store.Snapshot().Journal
	if len(entries) != 1 {
		t.Fatalf("len(Journal) = %d, want 1", len(entries))
	}
	if entries[0].Content != "today was loud" {
		t.Fatalf("Content = %q", entries[0].Content)
	}
	if entries[0].Mode != state.ModeClaws {
		t.Fatalf("Mode = %q, want CLAWS", entries[0].Mode)
	}
	if got := out.lastNotice(t); !strings.Contains(got, "CLAWS") {
		t.Fatalf("notice = %q, want mode mention", got)
	}
}

func TestJournalCommandOpensView(t *testing.T) {
	t.Parallel()

	_, _, env := newTestEnv(t)
	opened := false
	env.OpenJournal = func() tea.Cmd {
		opened = true
		return nil
	}

	ExecuteSlashCommand("/journal", env)
	if !opened {
		t.Fatal("bare /journal did not open the journal view")
	}
}

func TestReactCommand(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)
	store.AppendMessage(state.Message{Role: state.RoleUser, Text: "hello"})
	store.AppendMessage(state.Message{Role: state.RoleModel, Text: "hi", Mode: state.ModePaws})

	ExecuteSlashCommand("/react 2 🐻", env)
	msg := store.Snapshot().Messages[1]
	if len(msg.Reactions) != 1 || msg.Reactions[0] != "🐻" {
		t.Fatalf("Reactions = %v, want [🐻]", msg.Reactions)
	}

	// Same reaction again toggles it off.
	ExecuteSlashCommand("/react 2 🐻", env)
	if got := store.Snapshot().Messages[1].Reactions; len(got) != 0 {
		t.Fatalf("Reactions after toggle = %v, want empty", got)
	}

	ExecuteSlashCommand("/react 9 🐻", env)
	if got := out.lastError(t); !strings.Contains(got, "does not exist") {
		t.Fatalf("out-of-range error = %q", got)
	}

	ExecuteSlashCommand("/react zero 🐻", env)
	if got := out.lastError(t); !strings.Contains(got, "usage") {
		t.Fatalf("bad number error = %q", got)
	}
}

func TestClearCommandRequiresConfirmation(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)
	resampled := false
	env.RefreshActions = func() { resampled = true }
	store.AppendMessage(state.Message{Role: state.RoleUser, Text: "hello"})
	store.SaveJournal("keep me")

	ExecuteSlashCommand("/clear", env)
	if len(store.Snapshot().Messages) != 1 {
		t.Fatal("unconfirmed clear wiped a populated transcript")
	}
	if got := out.lastError(t); !strings.Contains(got, "/clear confirm") {
		t.Fatalf("error = %q, want confirmation hint", got)
	}

	ExecuteSlashCommand("/clear confirm", env)
	snap := store.Snapshot()
	if len(snap.Messages) != 0 {
		t.Fatalf("len(Messages) = %d, want 0", len(snap.Messages))
	}
	if len(snap.Journal) != 1 {
		t.Fatal("clear wiped the journal")
	}
	if !resampled {
		t.Fatal("clear did not resample the quick-action deck")
	}

	// An empty transcript clears without ceremony.
	ExecuteSlashCommand("/clear", env)
	if got := out.lastNotice(t); !strings.Contains(got, "purged") {
		t.Fatalf("notice = %q, want purge confirmation", got)
	}
}

func TestJournalCommandTriggersCelebration(t *testing.T) {
	t.Parallel()

	_, _, env := newTestEnv(t)
	celebrated := false
	env.Celebrate = func() tea.Cmd {
		celebrated = true
		return nil
	}

	ExecuteSlashCommand("/journal quiet win today", env)
	if !celebrated {
		t.Fatal("journal save did not trigger the celebration hook")
	}
}

func TestRecalibrateCommand(t *testing.T) {
	t.Parallel()

	_, out, env := newTestEnv(t)

	ExecuteSlashCommand("/recalibrate", env)
	if got := out.lastError(t); !strings.Contains(got, "not available") {
		t.Fatalf("error = %q, want unavailable hint", got)
	}

	reset := false
	env.ResetOnboarding = func() tea.Cmd {
		reset = true
		return nil
	}
	ExecuteSlashCommand("/recalibrate", env)
	if !reset {
		t.Fatal("recalibrate did not invoke the reset hook")
	}
}

func TestPokeAndRefreshCallbacks(t *testing.T) {
	t.Parallel()

	_, out, env := newTestEnv(t)
	poked, refreshed := false, false
	env.Poke = func() { poked = true }
	env.RefreshActions = func() { refreshed = true }

	ExecuteSlashCommand("/poke", env)
	ExecuteSlashCommand("/refresh", env)
	if !poked || !refreshed {
		t.Fatalf("poked = %v, refreshed = %v, want both true", poked, refreshed)
	}
	if got := out.lastNotice(t); !strings.Contains(got, "reshuffled") {
		t.Fatalf("refresh notice = %q", got)
	}
}

func TestLoginRequiresProfile(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)
	var signedIn string
	env.SignIn = func(email string) tea.Cmd {
		signedIn = email
		return nil
	}

	ExecuteSlashCommand("/login", env)
	if got := out.lastError(t); !strings.Contains(got, "calibration") {
		t.Fatalf("error = %q, want calibration hint", got)
	}

	store.SetProfile(state.UserProfile{Name: "Riley", Email: "riley@example.com"})
	ExecuteSlashCommand("/login", env)
	if signedIn != "riley@example.com" {
		t.Fatalf("signedIn = %q", signedIn)
	}
}

func TestSetCommand(t *testing.T) {
	t.Parallel()

	store, out, env := newTestEnv(t)

	ExecuteSlashCommand("/set reminders off", env)
	if store.Snapshot().Settings.DailyReminders {
		t.Fatal("DailyReminders still true")
	}

	ExecuteSlashCommand("/set alerts off", env)
	if store.Snapshot().Settings.CrisisAlerts {
		t.Fatal("CrisisAlerts still true")
	}

	ExecuteSlashCommand("/set supabase-url https://proj.supabase.co", env)
	ExecuteSlashCommand("/set supabase-key anon-key", env)
	settings := store.Snapshot().Settings
	if settings.SupabaseURL != "https://proj.supabase.co" || settings.SupabaseKey != "anon-key" {
		t.Fatalf("settings = %+v", settings)
	}

	ExecuteSlashCommand("/set volume 11", env)
	if got := out.lastError(t); !strings.Contains(got, "unknown setting") {
		t.Fatalf("error = %q", got)
	}

	ExecuteSlashCommand("/set reminders maybe", env)
	if got := out.lastError(t); !strings.Contains(got, "usage") {
		t.Fatalf("error = %q", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	_, out, env := newTestEnv(t)
	ExecuteSlashCommand("/teleport", env)
	if got := out.lastError(t); !strings.Contains(got, "unknown slash command") {
		t.Fatalf("error = %q", got)
	}
}
