package onboarding

import (
	"errors"
	"regexp"
	"strings"

	"bear/internal/state"
)

var (
	// ErrNameRequired blocks step 0 until a non-blank name is entered.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidEmail blocks step 0 until the email parses.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrKeywordsPending blocks briefing steps with unacknowledged terms.
	ErrKeywordsPending = errors.New("keywords pending acknowledgement")
	// ErrCompleted indicates the flow already finished.
	ErrCompleted = errors.New("calibration already complete")
)

// Message maps a gate error to the copy shown on the calibration screen.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNameRequired):
		return "Name is required for calibration."
	case errors.Is(err, ErrInvalidEmail):
		return "Valid email format required."
	case errors.Is(err, ErrKeywordsPending):
		return AckHint
	default:
		return ""
	}
}

// One non-whitespace run, an @, another run, a dot, a final run. Loose on
// purpose; the registration form is not an email verifier.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Flow tracks progress through the calibration steps. Completion is
// committed to the store in one shot; abandoning the flow midway leaves no
// trace in persisted state.
type Flow struct {
	store *state.Store

	step  int
	name  string
	email string
	acked map[string]bool
	done  bool
}

// NewFlow starts a flow at the registration step.
func NewFlow(store *state.Store) *Flow {
	return &Flow{store: store, acked: make(map[string]bool)}
}

// Step returns the zero-based index of the current step.
func (f *Flow) Step() int { return f.step }

// StepCount returns the number of calibration steps.
func (f *Flow) StepCount() int { return len(Steps) }

// Current returns the step being shown.
func (f *Flow) Current() Step { return Steps[f.step] }

// Done reports whether the flow has committed.
func (f *Flow) Done() bool { return f.done }

// Name returns the entered designation.
func (f *Flow) Name() string { return f.name }

// Email returns the entered communication link.
func (f *Flow) Email() string { return f.email }

// SetName records the designation field.
func (f *Flow) SetName(name string) { f.name = name }

// SetEmail records the email field.
func (f *Flow) SetEmail(email string) { f.email = email }

// Acknowledge marks a keyword on the current step as understood. It
// reports whether the id named a keyword of this step.
func (f *Flow) Acknowledge(id string) bool {
	for _, kw := range f.Current().Keywords {
		if kw.ID == id {
			f.acked[id] = true
			return true
		}
	}
	return false
}

// Acknowledged reports whether the keyword was acknowledged on this step.
func (f *Flow) Acknowledged(id string) bool { return f.acked[id] }

// CanAdvance reports whether the current step's gate is satisfied.
func (f *Flow) CanAdvance() bool {
	return f.gate() == nil
}

func (f *Flow) gate() error {
	if f.done {
		return ErrCompleted
	}
	if f.step == 0 {
		if strings.TrimSpace(f.name) == "" {
			return ErrNameRequired
		}
		if !emailPattern.MatchString(f.email) {
			return ErrInvalidEmail
		}
		return nil
	}
	for _, kw := range f.Current().Keywords {
		if !f.acked[kw.ID] {
			return ErrKeywordsPending
		}
	}
	return nil
}

// Advance moves to the next step once the gate is satisfied.
// Acknowledgements do not carry over between steps. Advancing past the
// final step commits the profile and the onboarded flag to the store.
func (f *Flow) Advance() error {
	if err := f.gate(); err != nil {
		return err
	}

	if f.step < len(Steps)-1 {
		f.step++
		f.acked = make(map[string]bool)
		return nil
	}

	f.store.SetProfile(state.UserProfile{
		Name:  strings.TrimSpace(f.name),
		Email: strings.TrimSpace(f.email),
	})
	f.store.SetOnboarded(true)
	f.done = true
	return nil
}
