// Package onboarding drives the five-step calibration flow that gates the
// chat surface until a profile is registered.
package onboarding

import "strings"

// Step themes select the palette the calibration screen renders with.
const (
	ThemeBase  = "base"
	ThemePaws  = "paws"
	ThemeClaws = "claws"
	ThemeFinal = "final"
)

// Keyword is an inline term the user must acknowledge before the step
// unlocks. ID is the stable key; Label is the rendered text.
type Keyword struct {
	ID    string
	Label string
}

// Step is one screen of the calibration flow.
type Step struct {
	Theme    string
	Title    string
	Subtitle string
	// Body may contain a {name} token filled in by RenderBody. Empty for
	// the registration step, which renders a form instead.
	Body     string
	Keywords []Keyword
}

// RenderBody substitutes the registered name into the step copy. A blank
// name renders as USER, matching the pre-registration state.
func (s Step) RenderBody(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "USER"
	}
	return strings.ReplaceAll(s.Body, "{name}", name)
}

// Steps is the fixed calibration sequence. Order is load-bearing: the
// registration form is step 0 and the flow completes after the last entry.
var Steps = []Step{
	{
		Theme:    ThemeBase,
		Title:    "IDENTITY REQUIRED",
		Subtitle: "Registration Protocol",
	},
	{
		Theme:    ThemeBase,
		Title:    "UNIT ACTIVATED",
		Subtitle: "Bifurcated Engine of Attitude Readjustment",
		Body: "Welcome to B.E.A.R., {name}. This unit is specifically assigned to you " +
			"because standard coping mechanisms have failed. We are here to assist.\n\n" +
			"These are,\nThe B.E.A.R. Necessities",
		Keywords: []Keyword{{ID: "standard", Label: "standard coping mechanisms"}},
	},
	{
		Theme:    ThemePaws,
		Title:    "SUBSYSTEM: P.A.W.S.",
		Subtitle: "Passive Attitude Wellness Subsystem",
		Body: "Status: Online. P.A.W.S. handles general malaise, venting, and " +
			"existential confusion. It is calm. It is a bear. It is listening.",
		Keywords: []Keyword{{ID: "PAWS", Label: "P.A.W.S."}},
	},
	{
		Theme:    ThemeClaws,
		Title:    "SUBSYSTEM: C.L.A.W.S.",
		Subtitle: "Critical Level Attitude Withdrawal Sequence",
		Body: "Status: Standby. C.L.A.W.S. handles system overloads. It does not " +
			"negotiate with your emotions; it stabilizes them.",
		Keywords: []Keyword{
			{ID: "CLAWS", Label: "C.L.A.W.S."},
			{ID: "stabilizes", Label: "stabilizes"},
		},
	},
	{
		Theme:    ThemeFinal,
		Title:    "CALIBRATION COMPLETE",
		Subtitle: "Protocols Loaded",
		Body: "The engine is now online. Please do not feed the algorithms. Select " +
			"your status on the dashboard to begin regulation.",
		Keywords: []Keyword{{ID: "status", Label: "status"}},
	},
}

// RegistrationNote is the privacy blurb shown above the step 0 form.
const RegistrationNote = "Please register your designation. This data is stored locally to personalize your experience."

// AckHint nags until every keyword on the current step is acknowledged.
const AckHint = "Tap the highlighted words to confirm understanding"
