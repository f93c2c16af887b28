package command

import (
	"encoding/json"
	"fmt"
)

// CommandError is the error returned by Invoke.
// Callers only ever see Message; the cause is kept for logging.
type CommandError struct {
	Command string
	Message string
	cause   error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

// MarshalJSON encodes the error as a bare JSON string.
func (e *CommandError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Message)
}

func newCommandError(command, prefix string, cause error) *CommandError {
	return &CommandError{
		Command: command,
		Message: fmt.Sprintf("%s %v", prefix, cause),
		cause:   cause,
	}
}

// Message prefixes, one per command.
const (
	msgAddFailed    = "Error saving todo:"
	msgListFailed   = "Failed to get todos"
	msgUpdateFailed = "could not update todo"
	msgDeleteFailed = "could not delete todo"
)
