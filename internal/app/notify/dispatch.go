package notify

import (
	"context"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Dispatcher adapts a ports.Notification into a Postable. Each outcome goes
// to exactly one of NotifySuccess or NotifyError.
type Dispatcher[R any] struct {
	target ports.Notification[R]
}

var _ ports.Postable[struct{}] = (*Dispatcher[struct{}])(nil)

// NewDispatcher wraps target.
func NewDispatcher[R any](target ports.Notification[R]) *Dispatcher[R] {
	return &Dispatcher[R]{target: target}
}

// Post routes outcome by success.
func (d *Dispatcher[R]) Post(ctx context.Context, outcome domain.Outcome[R]) {
	if outcome.Succeeded() {
		d.target.NotifySuccess(ctx, outcome.Response)
		return
	}
	d.target.NotifyError(ctx, outcome.Err)
}

// Handlers is a ports.Notification built from two functions. A nil handler
// ignores its half of the outcomes.
type Handlers[R any] struct {
	OnSuccess func(ctx context.Context, response R)
	OnError   func(ctx context.Context, err *domain.Error)
}

var _ ports.Notification[struct{}] = Handlers[struct{}]{}

// NotifySuccess calls OnSuccess.
func (h Handlers[R]) NotifySuccess(ctx context.Context, response R) {
	if h.OnSuccess != nil {
		h.OnSuccess(ctx, response)
	}
}

// NotifyError calls OnError.
func (h Handlers[R]) NotifyError(ctx context.Context, err *domain.Error) {
	if h.OnError != nil {
		h.OnError(ctx, err)
	}
}
