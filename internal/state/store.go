package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrStatePathRequired indicates a missing snapshot file path.
	ErrStatePathRequired = errors.New("state path is required")
	// ErrMessageNotFound indicates a reaction toggle against an unknown message.
	ErrMessageNotFound = errors.New("message not found")
)

// Observer is invoked synchronously after every store mutation with a copy
// of the new snapshot.
type Observer func(Snapshot)

// Config configures store creation.
type Config struct {
	// Path is the snapshot file location.
	Path string
	// Logger receives persistence diagnostics. Optional.
	Logger *zap.Logger
	// OnCredentials fires after a settings patch that leaves both remote
	// database credential fields non-empty. Optional.
	OnCredentials func(url, key string)
	// Now overrides the timestamp source. Optional, used by tests.
	Now func() int64
}

// Store owns the canonical session snapshot. Every mutation rewrites the
// whole snapshot to disk, so a crash loses at most the latest mutation and
// never produces inconsistent cross-field state.
type Store struct {
	path          string
	log           *zap.Logger
	onCredentials func(url, key string)
	now           func() int64

	mu        sync.Mutex
	snap      Snapshot
	lastStamp int64
	observers []Observer
}

// Open loads the persisted snapshot or falls back to defaults. Missing or
// unparsable data is never fatal.
func Open(cfg Config) (*Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, ErrStatePathRequired
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = func() int64 { return time.Now().UnixMilli() }
	}

	s := &Store{
		path:          path,
		log:           log,
		onCredentials: cfg.OnCredentials,
		now:           now,
		snap:          DefaultSnapshot(),
	}
	s.loadSnapshot()
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Subscribe registers an observer called synchronously after each mutation.
func (s *Store) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// SetMode switches the active subsystem. A no-op when the mode is invalid
// or already active.
func (s *Store) SetMode(mode Mode) bool {
	if !mode.Valid() {
		return false
	}
	s.mu.Lock()
	if s.snap.Mode == mode {
		s.mu.Unlock()
		return false
	}
	s.snap.Mode = mode
	s.commitLocked()
	return true
}

// AppendMessage appends one transcript message, assigning an id and a
// non-decreasing timestamp when absent, and returns the stored message.
func (s *Store) AppendMessage(msg Message) Message {
	s.mu.Lock()
	if strings.TrimSpace(msg.ID) == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp == 0 {
		msg.Timestamp = s.now()
	}
	if msg.Timestamp < s.lastStamp {
		msg.Timestamp = s.lastStamp
	}
	s.lastStamp = msg.Timestamp
	s.snap.Messages = append(s.snap.Messages, msg)
	s.commitLocked()
	return msg
}

// ClearMessages drops the full transcript.
func (s *Store) ClearMessages() {
	s.mu.Lock()
	s.snap.Messages = []Message{}
	s.commitLocked()
}

// SaveJournal snapshots content into a new journal entry, tagged with the
// current mode and prepended newest-first.
func (s *Store) SaveJournal(content string) JournalEntry {
	s.mu.Lock()
	entry := JournalEntry{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: s.now(),
		Mode:      s.snap.Mode,
	}
	s.snap.Journal = append([]JournalEntry{entry}, s.snap.Journal...)
	s.commitLocked()
	return entry
}

// DeleteJournalEntry removes the entry with the given id. A no-op when
// absent.
func (s *Store) DeleteJournalEntry(id string) bool {
	s.mu.Lock()
	for i, entry := range s.snap.Journal {
		if entry.ID == id {
			s.snap.Journal = append(s.snap.Journal[:i:i], s.snap.Journal[i+1:]...)
			s.commitLocked()
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// ToggleReaction flips membership of an emoji token in a message's
// reaction set: present is removed, absent is added.
func (s *Store) ToggleReaction(messageID, emoji string) error {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil
	}
	s.mu.Lock()
	for i := range s.snap.Messages {
		if s.snap.Messages[i].ID != messageID {
			continue
		}
		reactions := s.snap.Messages[i].Reactions
		removed := false
		for j, token := range reactions {
			if token == emoji {
				reactions = append(reactions[:j:j], reactions[j+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			reactions = append(reactions, emoji)
		}
		s.snap.Messages[i].Reactions = reactions
		s.commitLocked()
		return nil
	}
	s.mu.Unlock()
	return fmt.Errorf("%w: %s", ErrMessageNotFound, messageID)
}

// PatchSettings applies one settings mutation. When both remote database
// credential fields are non-empty afterwards, the credentials hook fires;
// re-firing on every qualifying patch is intended, initialization is
// idempotent on the receiving side.
func (s *Store) PatchSettings(apply func(*Settings)) Settings {
	if apply == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.snap.Settings
	}
	s.mu.Lock()
	apply(&s.snap.Settings)
	patched := s.snap.Settings
	s.commitLocked()

	if s.onCredentials != nil && patched.SupabaseURL != "" && patched.SupabaseKey != "" {
		s.onCredentials(patched.SupabaseURL, patched.SupabaseKey)
	}
	return patched
}

// SetProfile records the onboarded user identity.
func (s *Store) SetProfile(profile UserProfile) {
	s.mu.Lock()
	s.snap.User = &profile
	s.commitLocked()
}

// SetOnboarded flips the onboarding gate.
func (s *Store) SetOnboarded(done bool) {
	s.mu.Lock()
	s.snap.Onboarded = done
	s.commitLocked()
}

// ResetOnboarding clears the profile and reopens the onboarding gate.
func (s *Store) ResetOnboarding() {
	s.mu.Lock()
	s.snap.User = nil
	s.snap.Onboarded = false
	s.commitLocked()
}

// commitLocked persists the snapshot and notifies observers. The caller
// must hold the mutex; commitLocked releases it before observers run so
// observers may read the store.
func (s *Store) commitLocked() {
	snapshot := s.snap.Clone()
	observers := append([]Observer(nil), s.observers...)
	s.persistLocked(snapshot)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// persistLocked writes the whole snapshot as one unit via temp-file
// replace. Failures are logged and swallowed; the in-memory state stays
// authoritative.
func (s *Store) persistLocked(snapshot Snapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		s.log.Warn("marshal snapshot", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn("create state dir", zap.Error(err))
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		s.log.Warn("write snapshot", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.log.Warn("replace snapshot", zap.Error(err))
	}
}

func (s *Store) loadSnapshot() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("read snapshot, using defaults", zap.Error(err))
		}
		return
	}

	snap := DefaultSnapshot()
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Warn("parse snapshot, using defaults", zap.Error(err))
		return
	}
	if !snap.Mode.Valid() {
		snap.Mode = ModePaws
	}
	if snap.Messages == nil {
		snap.Messages = []Message{}
	}
	if snap.Journal == nil {
		snap.Journal = []JournalEntry{}
	}
	s.snap = snap
	for _, msg := range snap.Messages {
		if msg.Timestamp > s.lastStamp {
			s.lastStamp = msg.Timestamp
		}
	}
}
