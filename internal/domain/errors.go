package domain

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Sentinels. Adapters wrap them with %w; Classify maps them to categories.
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
	ErrPersistence = errors.New("persistence failure")
	ErrNetwork     = errors.New("network failure")
)

// MsgRequired is the validation message for mandatory fields.
const MsgRequired = "is required"

// ValidationError carries one message per offending field. It matches
// ErrValidation under errors.Is; errors.As exposes Fields.
type ValidationError struct {
	Fields map[string]string
}

// Invalid reports a single bad field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// Error lists fields in name order so the text is stable.
func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	for i, field := range slices.Sorted(maps.Keys(e.Fields)) {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(field + ": " + e.Fields[field])
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
