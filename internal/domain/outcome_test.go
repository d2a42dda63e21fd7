package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Category
	}{
		{name: "nil", err: nil, want: CategoryUnknown},
		{name: "not found", err: fmt.Errorf("article a1: %w", ErrNotFound), want: CategoryNotFound},
		{name: "validation error type", err: &ValidationError{Fields: map[string]string{"id": MsgRequired}}, want: CategoryValidation},
		{name: "conflict", err: ErrConflict, want: CategoryConflict},
		{name: "forbidden", err: ErrForbidden, want: CategoryForbidden},
		{name: "unavailable", err: ErrUnavailable, want: CategoryUnavailable},
		{name: "network", err: fmt.Errorf("dial: %w", ErrNetwork), want: CategoryNetwork},
		{name: "persistence", err: fmt.Errorf("commit: %w", ErrPersistence), want: CategoryPersistence},
		{name: "plain error", err: errors.New("boom"), want: CategoryUnknown},
		{name: "wrapped domain error keeps category", err: fmt.Errorf("x: %w", NewError(CategoryInternal, "panic", nil)), want: CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	derr := NewError(CategoryNotFound, "", fmt.Errorf("article a1: %w", ErrNotFound))

	assert.ErrorIs(t, derr, ErrNotFound)
	assert.Equal(t, "not_found: article a1: not found", derr.Error())
}

func TestAsError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, AsError(nil))

	original := NewError(CategoryNetwork, "timeout", nil)
	assert.Same(t, original, AsError(fmt.Errorf("wrapped: %w", original)))

	converted := AsError(ErrConflict)
	require.NotNil(t, converted)
	assert.Equal(t, CategoryConflict, converted.Category)
	assert.ErrorIs(t, converted, ErrConflict)
}

func TestOutcome(t *testing.T) {
	t.Parallel()

	ok := Success(42)
	assert.True(t, ok.Succeeded())
	v, err := ok.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	failed := Failure[int](NewError(CategoryValidation, "bad", nil))
	assert.False(t, failed.Succeeded())
	v, err = failed.Get()
	require.Error(t, err)
	assert.Zero(t, v)

	// A nil error still produces a failed outcome.
	assert.False(t, Failure[int](nil).Succeeded())
}
