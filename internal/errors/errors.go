// Package errors defines the structured error kinds shared by the selection,
// storage and settings layers. Every error carries a code so callers can
// decide whether it is a hard rejection or a warning without string matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrAlreadySelected    = "ALREADY_SELECTED"
	ErrLimitExceeded      = "LIMIT_EXCEEDED"
	ErrMinimumRequired    = "MINIMUM_REQUIRED"
	ErrNotFound           = "NOT_FOUND"
	ErrPersistence        = "PERSISTENCE_WRITE_FAILED"
	ErrMalformedPersisted = "MALFORMED_PERSISTED_STATE"
	ErrConfig             = "CONFIG"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %s", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(" (%s)", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var barErr *Error
	if errors.As(err, &barErr) {
		return barErr.Code == code
	}
	return false
}

// Code returns the code of a structured error, or "" for anything else.
func Code(err error) string {
	var barErr *Error
	if errors.As(err, &barErr) {
		return barErr.Code
	}
	return ""
}

// IsWarning reports whether err is non-fatal: the operation it came from
// still took effect in memory.
func IsWarning(err error) bool {
	return IsCode(err, ErrPersistence) || IsCode(err, ErrMalformedPersisted)
}

// Selection rejection helpers. Messages are user facing.

// AlreadySelected is returned when adding an item that is already selected.
func AlreadySelected(kind, id string) *Error {
	return New(ErrAlreadySelected, fmt.Sprintf("%s %q is already selected.", capitalize(kind), id), "")
}

// LimitExceeded is returned when a selection is already at its maximum.
func LimitExceeded(kind string, max int) *Error {
	return New(ErrLimitExceeded, fmt.Sprintf("You can select up to %d %ss.", max, kind),
		fmt.Sprintf("remove a %s first", kind))
}

// MinimumRequired is returned when removing the last selected item.
func MinimumRequired(kind string) *Error {
	return New(ErrMinimumRequired, fmt.Sprintf("Please keep at least one %s selected.", kind), "")
}

// NotFound is returned for ids that are not in the catalog or not selected.
func NotFound(kind, id string) *Error {
	return New(ErrNotFound, fmt.Sprintf("Unknown %s %q.", kind, id), "")
}

// NotSelected is returned when removing an item that is not in the selection.
func NotSelected(kind, id string) *Error {
	return New(ErrNotFound, fmt.Sprintf("%s %q is not selected.", capitalize(kind), id), "")
}

// PersistenceFailed wraps a storage write failure. The in-memory change stands.
func PersistenceFailed(err error, key string) *Error {
	return WrapWithCode(err, ErrPersistence,
		fmt.Sprintf("Could not save %s", key),
		"the change is kept for this session only")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
