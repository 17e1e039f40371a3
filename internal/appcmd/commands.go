// Package appcmd implements the slash-command layer of the chat surface.
package appcmd

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bear/internal/state"
)

// ExecuteSlashCommand parses and handles one slash command.
func ExecuteSlashCommand(content string, env CommandEnv) tea.Cmd {
	if env.Store == nil {
		appendError(env, "store is not initialized")
		return nil
	}

	parts := strings.Fields(strings.TrimSpace(content))
	if len(parts) == 0 {
		return nil
	}
	command := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	switch command {
	case "help":
		appendNotice(env, strings.Join([]string{
			"Slash commands:",
			"/help",
			"/mode [paws|claws]",
			"/journal [entry text]",
			"/react <message-number> <emoji>",
			"/clear [confirm]",
			"/refresh",
			"/poke",
			"/login",
			"/recalibrate",
			"/set <reminders|alerts> <on|off>",
			"/set <supabase-url|supabase-key> <value>",
		}, "\n"))
	case "mode":
		if len(args) == 0 {
			appendNotice(env, "Active subsystem: "+string(env.Store.Snapshot().Mode))
			return nil
		}
		// Switching is allowed while a reply is pending; the pending reply
		// keeps the tag of the subsystem that produced it.
		mode := state.Mode(strings.ToUpper(args[0]))
		if !mode.Valid() {
			appendError(env, "usage: /mode [paws|claws]")
			return nil
		}
		if !env.Store.SetMode(mode) {
			appendNotice(env, "Subsystem "+string(mode)+" is already active.")
			return nil
		}
		rebuildChat(env)
		refreshStatus(env)
		appendNotice(env, "Subsystem switched to "+string(mode)+".")
	case "journal":
		if len(args) == 0 {
			if env.OpenJournal == nil {
				appendError(env, "journal view is not available")
				return nil
			}
			return env.OpenJournal()
		}
		entry := env.Store.SaveJournal(strings.Join(args, " "))
		appendNotice(env, fmt.Sprintf("Journal entry logged under %s.", entry.Mode))
		if env.Celebrate != nil {
			return env.Celebrate()
		}
	case "react":
		if len(args) != 2 {
			appendError(env, "usage: /react <message-number> <emoji>")
			return nil
		}
		number, err := strconv.Atoi(args[0])
		if err != nil || number < 1 {
			appendError(env, "usage: /react <message-number> <emoji>")
			return nil
		}
		messages := env.Store.Snapshot().Messages
		if number > len(messages) {
			appendError(env, fmt.Sprintf("message %d does not exist", number))
			return nil
		}
		if err := env.Store.ToggleReaction(messages[number-1].ID, args[1]); err != nil {
			appendError(env, err.Error())
			return nil
		}
		rebuildChat(env)
	case "clear":
		if env.InFlight {
			appendError(env, "cannot clear the transcript while a reply is pending")
			return nil
		}
		// A populated transcript needs an explicit confirmation.
		if len(env.Store.Snapshot().Messages) > 0 &&
			(len(args) == 0 || !strings.EqualFold(args[0], "confirm")) {
			appendError(env, "transcript is not empty; use /clear confirm")
			return nil
		}
		env.Store.ClearMessages()
		if env.RefreshActions != nil {
			env.RefreshActions()
		}
		rebuildChat(env)
		appendNotice(env, "Transcript purged.")
	case "refresh":
		if env.RefreshActions == nil {
			appendError(env, "quick actions are not available")
			return nil
		}
		env.RefreshActions()
		appendNotice(env, "Quick actions reshuffled.")
	case "poke":
		if env.Poke == nil {
			appendError(env, "there is no bear to poke")
			return nil
		}
		env.Poke()
	case "login":
		if env.SignIn == nil {
			appendError(env, "sign-in is not available")
			return nil
		}
		snap := env.Store.Snapshot()
		if snap.User == nil || strings.TrimSpace(snap.User.Email) == "" {
			appendError(env, "no registered email; complete calibration first")
			return nil
		}
		return env.SignIn(snap.User.Email)
	case "recalibrate":
		if env.ResetOnboarding == nil {
			appendError(env, "recalibration is not available")
			return nil
		}
		return env.ResetOnboarding()
	case "set":
		if len(args) != 2 {
			appendError(env, "usage: /set <key> <value>")
			return nil
		}
		return applySetting(env, args[0], args[1])
	default:
		appendError(env, "unknown slash command: /"+command)
	}

	return nil
}

func applySetting(env CommandEnv, key, value string) tea.Cmd {
	switch strings.ToLower(key) {
	case "reminders", "alerts":
		enabled, ok := parseToggle(value)
		if !ok {
			appendError(env, "usage: /set "+key+" <on|off>")
			return nil
		}
		env.Store.PatchSettings(func(s *state.Settings) {
			if strings.ToLower(key) == "reminders" {
				s.DailyReminders = enabled
			} else {
				s.CrisisAlerts = enabled
			}
		})
		statusWord := "disabled"
		if enabled {
			statusWord = "enabled"
		}
		appendNotice(env, key+" "+statusWord+".")
	case "supabase-url":
		env.Store.PatchSettings(func(s *state.Settings) { s.SupabaseURL = value })
		appendNotice(env, "Supabase URL updated.")
	case "supabase-key":
		env.Store.PatchSettings(func(s *state.Settings) { s.SupabaseKey = value })
		appendNotice(env, "Supabase key updated.")
	default:
		appendError(env, "unknown setting: "+key)
	}
	return nil
}

func parseToggle(value string) (enabled, ok bool) {
	switch strings.ToLower(value) {
	case "on", "true", "1":
		return true, true
	case "off", "false", "0":
		return false, true
	}
	return false, false
}

func appendNotice(env CommandEnv, text string) {
	if env.AppendNotice != nil {
		env.AppendNotice(text)
	}
}

func appendError(env CommandEnv, errText string) {
	if env.AppendError != nil {
		env.AppendError(errText)
	}
}

func rebuildChat(env CommandEnv) {
	if env.RebuildChat != nil {
		env.RebuildChat()
	}
}

func refreshStatus(env CommandEnv) {
	if env.RefreshStatus != nil {
		env.RefreshStatus()
	}
}
