package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	genai "google.golang.org/genai"
)

var ErrNoObject = errors.New("llm: no object generated")

// Client produces a JSON value conforming to the given schema.
type Client interface {
	Name() string
	GenerateObject(ctx context.Context, system, prompt string, schema *genai.Schema) (json.RawMessage, error)
	Close() error
}

// RecoverableError marks a generation failure that is worth retrying with the
// same inputs: truncated output, malformed JSON, schema validation misses.
// Anything else is treated as permanent.
type RecoverableError struct {
	Err error
}

func (e *RecoverableError) Error() string { return e.Err.Error() }
func (e *RecoverableError) Unwrap() error { return e.Err }

func NewRecoverableError(err error) error {
	return &RecoverableError{Err: err}
}

// IsRecoverable reports whether err carries a RecoverableError, or failing
// that, whether its message matches a known recoverable signature.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}
	var rErr *RecoverableError
	if errors.As(err, &rErr) {
		return true
	}
	return matchesRecoverableSignature(err.Error())
}

var recoverableSignatures = []string{
	"schema",
	"JSON",
	"json",
	"parse",
	"Unterminated",
	"no object generated",
	"too_big",
	"truncated",
}

func matchesRecoverableSignature(msg string) bool {
	for _, sig := range recoverableSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
