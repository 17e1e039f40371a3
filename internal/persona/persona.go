// Package persona resolves which subsystem instruction template applies to
// a model call and personalizes it for the current user.
package persona

import (
	"strings"

	"bear/internal/state"
)

// BasePrompt returns the unpersonalized instruction template for a mode.
// Unknown modes fall back to P.A.W.S.
func BasePrompt(mode state.Mode) string {
	if mode == state.ModeClaws {
		return clawsSystemPrompt
	}
	return pawsSystemPrompt
}

// Resolve returns the instruction text for a mode, with every occurrence of
// the placeholder first name replaced by the profile name. Title case covers
// the normal token and upper case the shouted token. Without a usable
// profile name the base template is returned untouched; the literal
// placeholder is the intended fallback, not an error.
func Resolve(mode state.Mode, profile *state.UserProfile) string {
	prompt := BasePrompt(mode)
	if profile == nil {
		return prompt
	}
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return prompt
	}
	prompt = strings.ReplaceAll(prompt, placeholderName, name)
	prompt = strings.ReplaceAll(prompt, placeholderNameUpper, strings.ToUpper(name))
	return prompt
}

// Placeholder returns the persona-flavored input prompt line.
func Placeholder(mode state.Mode) string {
	if mode == state.ModeClaws {
		return "REPORT STATUS IMMEDIATELY..."
	}
	return "Enter thoughts for processing..."
}

// IdleNotice returns the empty-transcript banner line for a mode.
func IdleNotice(mode state.Mode) string {
	if mode == state.ModeClaws {
		return "Critical Level protocols active. Tactical support standing by."
	}
	return "Passive Wellness Subsystem is monitoring. Vital signs stable."
}
