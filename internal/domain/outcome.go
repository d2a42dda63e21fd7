package domain

import (
	"errors"
	"fmt"
)

// Category classifies a failure reported through an Outcome. The taxonomy is
// owned by the application; the task machinery never inspects it.
type Category string

const (
	CategoryValidation  Category = "validation"
	CategoryNotFound    Category = "not_found"
	CategoryConflict    Category = "conflict"
	CategoryForbidden   Category = "forbidden"
	CategoryUnavailable Category = "unavailable"
	CategoryNetwork     Category = "network"
	CategoryPersistence Category = "persistence"
	CategoryInternal    Category = "internal"
	CategoryUnknown     Category = "unknown"
)

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Error is the categorized failure value carried by a failed Outcome.
// It unwraps to its Cause so errors.Is against the sentinel errors keeps working.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

// NewError builds an Error. An empty message falls back to the cause's text.
func NewError(category Category, message string, cause error) *Error {
	if message == "" && cause != nil {
		message = cause.Error()
	}
	return &Error{Category: category, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Category)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Classify maps an error onto a Category using the sentinel errors.
// An error that already is (or wraps) an *Error keeps its category.
func Classify(err error) Category {
	var derr *Error
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.As(err, &derr):
		return derr.Category
	case errors.Is(err, ErrValidation):
		return CategoryValidation
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrConflict):
		return CategoryConflict
	case errors.Is(err, ErrForbidden):
		return CategoryForbidden
	case errors.Is(err, ErrUnavailable):
		return CategoryUnavailable
	case errors.Is(err, ErrNetwork):
		return CategoryNetwork
	case errors.Is(err, ErrPersistence):
		return CategoryPersistence
	default:
		return CategoryUnknown
	}
}

// AsError returns err as an *Error, classifying it when it is not one already.
// A nil err yields nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var derr *Error
	if errors.As(err, &derr) {
		return derr
	}
	return NewError(Classify(err), "", err)
}

// Outcome is the result of one task run: exactly one of Response or Err is meaningful.
// Err is nil on success.
type Outcome[R any] struct {
	Response R
	Err      *Error
}

// Success wraps a response into a successful Outcome.
func Success[R any](response R) Outcome[R] {
	return Outcome[R]{Response: response}
}

// Failure wraps an error into a failed Outcome. A nil err is recorded as an
// unknown failure so the outcome never reads as a success.
func Failure[R any](err *Error) Outcome[R] {
	if err == nil {
		err = NewError(CategoryUnknown, "unspecified failure", nil)
	}
	return Outcome[R]{Err: err}
}

// Succeeded reports whether the outcome carries a response.
func (o Outcome[R]) Succeeded() bool {
	return o.Err == nil
}

// Get returns the response and the failure as a plain error.
func (o Outcome[R]) Get() (R, error) {
	if o.Err != nil {
		var zero R
		return zero, o.Err
	}
	return o.Response, nil
}
