// Package engage holds the small interaction toys around the chat surface:
// the poke counter, the quick-action deck, and the distraction marker.
package engage

import "bear/internal/state"

// Poke thresholds. The counter resets after the persistence remark.
const (
	pokeFirstWarning  = 3
	pokeSecondWarning = 8
	pokeResetAbove    = 15
)

// PokeCounter tracks mascot pokes within one app session. It is not
// persisted; a restart forgives everything.
type PokeCounter struct {
	count int
}

// Count returns the running poke tally.
func (p *PokeCounter) Count() int { return p.count }

// Poke registers one poke and returns the reaction for the new tally, if
// any. Most pokes pass in silence.
func (p *PokeCounter) Poke(mode state.Mode) (string, bool) {
	p.count++

	switch {
	case p.count == pokeFirstWarning:
		if mode == state.ModeClaws {
			return "UNAUTHORIZED CONTACT. CEASE.", true
		}
		return "Please do not poke the bear. I am napping.", true
	case p.count == pokeSecondWarning:
		if mode == state.ModeClaws {
			return "TACTICAL COUNTERMEASURES ENGAGED. (Just kidding, stop it.)", true
		}
		return "Seriously. Personal space.", true
	case p.count > pokeResetAbove:
		p.count = 0
		return "You are very persistent.", true
	}
	return "", false
}
