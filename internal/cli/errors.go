package cli

import (
	"fmt"
	"strings"
)

// NotFoundError indicates no task matched an id or id prefix.
type NotFoundError struct {
	ID string // the id or prefix that was not found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found", e.ID)
}

// AmbiguousError indicates an id prefix matched more than one task.
type AmbiguousError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous task id %q matches: %s", e.Prefix, strings.Join(e.Matches, ", "))
}

// ValidationError indicates bad command input.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
