package ports

import (
	"context"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
)

// Delegate performs the actual work of a task and yields a response or an error.
// The task never inspects the response; errors are composed into a domain.Error.
type Delegate[R any] interface {
	Execute(ctx context.Context) (R, error)
}

// DelegateFunc adapts an ordinary function to the Delegate interface.
type DelegateFunc[R any] func(ctx context.Context) (R, error)

// Execute calls f(ctx).
func (f DelegateFunc[R]) Execute(ctx context.Context) (R, error) {
	return f(ctx)
}

// Postable receives the outcome of a task run. Implementations must be safe
// to call from any goroutine and must not block indefinitely.
type Postable[R any] interface {
	Post(ctx context.Context, outcome domain.Outcome[R])
}

// PostableFunc adapts an ordinary function to the Postable interface.
type PostableFunc[R any] func(ctx context.Context, outcome domain.Outcome[R])

// Post calls f(ctx, outcome).
func (f PostableFunc[R]) Post(ctx context.Context, outcome domain.Outcome[R]) {
	f(ctx, outcome)
}

// Notification is a two-method observer that receives either the response or
// the error of a run, never both.
type Notification[R any] interface {
	NotifySuccess(ctx context.Context, response R)
	NotifyError(ctx context.Context, err *domain.Error)
}

// Runnable is the contract an executor schedules. Tasks satisfy it.
type Runnable interface {
	Run(ctx context.Context)
}

// Executor schedules runnables. Submit must not block on the runnable itself.
type Executor interface {
	Submit(ctx context.Context, r Runnable) error
}

// PerformanceModule observes the start and end of a use case execution.
// Start and End are called for every execution, successful or not, with the
// same trace ID.
type PerformanceModule interface {
	Name() string
	Start(ctx context.Context, traceID string)
	End(ctx context.Context, traceID string)
}
