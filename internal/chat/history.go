package chat

import (
	"errors"
	"strings"

	"bear/internal/llm"
	"bear/internal/state"
)

// ErrEmptyMessage indicates an outgoing text that is empty after trimming.
var ErrEmptyMessage = errors.New("outgoing message is empty")

// Payload is the provider-call shape assembled from the transcript.
type Payload struct {
	// Prior holds every logged turn except the active one, in order.
	Prior []llm.Turn
	// Prompt is the model-facing active turn. It may differ from the text
	// stored in the transcript when a hidden steering directive is in play.
	Prompt string
}

// BuildPayload maps the full transcript, with the pending user turn already
// appended as its last entry, into prior turns plus the active prompt. Both
// subsystems share one transcript, so prior turns carry every past mode's
// messages unchanged.
func BuildPayload(log []state.Message, activePrompt string) (Payload, error) {
	if strings.TrimSpace(activePrompt) == "" {
		return Payload{}, ErrEmptyMessage
	}

	prior := make([]llm.Turn, 0, max(len(log)-1, 0))
	for i := 0; i+1 < len(log); i++ {
		prior = append(prior, llm.Turn{
			Role: roleFor(log[i].Role),
			Text: log[i].Text,
		})
	}
	return Payload{Prior: prior, Prompt: activePrompt}, nil
}

func roleFor(role state.Role) llm.Role {
	if role == state.RoleModel {
		return llm.RoleModel
	}
	return llm.RoleUser
}
