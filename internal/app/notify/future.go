package notify

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Future holds the first outcome posted to it. Later posts are ignored, so a
// Future belongs to exactly one task run.
type Future[R any] struct {
	once    sync.Once
	done    chan struct{}
	outcome domain.Outcome[R]
}

var _ ports.Postable[struct{}] = (*Future[struct{}])(nil)

// NewFuture returns an empty Future.
func NewFuture[R any]() *Future[R] {
	return &Future[R]{done: make(chan struct{})}
}

// Post records outcome if nothing has been recorded yet. It never blocks.
func (f *Future[R]) Post(_ context.Context, outcome domain.Outcome[R]) {
	f.once.Do(func() {
		f.outcome = outcome
		close(f.done)
	})
}

// Done is closed once an outcome has been posted.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until an outcome is posted or ctx ends.
func (f *Future[R]) Await(ctx context.Context) (domain.Outcome[R], error) {
	select {
	case <-f.done:
		return f.outcome, nil
	case <-ctx.Done():
		return domain.Outcome[R]{}, ctx.Err()
	}
}
