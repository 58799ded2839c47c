package errors

import (
	"fmt"
	"os"

	"github.com/vsukhanov/tracker/internal/logger"
)

type sentinel string

func (e sentinel) Error() string { return string(e) }

// Domain errors returned synchronously to command callers. Background
// recomputation never surfaces these; see the view package.
const (
	ErrUnknownHabit        = sentinel("habit not found")
	ErrUnknownCategory     = sentinel("category not found")
	ErrCategoryNotEmpty    = sentinel("category still has habits")
	ErrDuplicateCompletion = sentinel("completion already recorded for this day")
)

// ValidationError reports a rejected habit or category draft. It is
// raised before any storage mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for the given field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
