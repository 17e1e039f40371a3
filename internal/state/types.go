package state

// Mode selects which of the two bear subsystems answers.
type Mode string

const (
	// ModePaws is the Passive Attitude Wellness Subsystem.
	ModePaws Mode = "PAWS"
	// ModeClaws is the Critical Level Attitude Withdrawal Sequence.
	ModeClaws Mode = "CLAWS"
)

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModePaws || m == ModeClaws
}

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one transcript entry.
// Mode is set only on model messages and records which subsystem generated
// the reply; it never changes after creation.
type Message struct {
	ID        string   `json:"id"`
	Role      Role     `json:"role"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
	Mode      Mode     `json:"mode,omitempty"`
	Reactions []string `json:"reactions,omitempty"`
}

// JournalEntry is a saved snapshot of message text. Content is copied at
// save time; it holds no reference back into the transcript.
type JournalEntry struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Mode      Mode   `json:"mode"`
}

// Settings is the user-tunable configuration record.
type Settings struct {
	DailyReminders bool   `json:"dailyReminders"`
	CrisisAlerts   bool   `json:"crisisAlerts"`
	SupabaseURL    string `json:"supabaseUrl"`
	SupabaseKey    string `json:"supabaseKey"`
}

// UserProfile holds the identity collected during onboarding.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Snapshot is the complete serializable session state. It is persisted
// wholesale on every mutation; partial writes never happen.
type Snapshot struct {
	Messages  []Message      `json:"messages"`
	Journal   []JournalEntry `json:"journal"`
	Mode      Mode           `json:"mode"`
	Settings  Settings       `json:"settings"`
	User      *UserProfile   `json:"user,omitempty"`
	Onboarded bool           `json:"hasOnboarded"`
}

// DefaultSettings returns the fixed default settings record.
func DefaultSettings() Settings {
	return Settings{
		DailyReminders: true,
		CrisisAlerts:   true,
	}
}

// DefaultSnapshot returns the startup state used when no persisted
// snapshot exists or the persisted one cannot be parsed.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Messages: []Message{},
		Journal:  []JournalEntry{},
		Mode:     ModePaws,
		Settings: DefaultSettings(),
	}
}

// Clone returns a deep copy safe to hand to observers and callers.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Messages = make([]Message, len(s.Messages))
	for i, msg := range s.Messages {
		out.Messages[i] = msg
		if len(msg.Reactions) > 0 {
			out.Messages[i].Reactions = append([]string(nil), msg.Reactions...)
		}
	}
	out.Journal = append([]JournalEntry(nil), s.Journal...)
	if s.User != nil {
		user := *s.User
		out.User = &user
	}
	return out
}
