package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest indicates missing or malformed generate request input.
	ErrInvalidRequest = errors.New("invalid llm request")
	// ErrMissingAPIKey indicates missing provider API key.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrEmptyResponse indicates the provider resolved without any text.
	ErrEmptyResponse = errors.New("empty model response")
)

func wrapInvalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, detail)
}
