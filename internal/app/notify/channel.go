package notify

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Channel fans outcomes from many tasks into one buffered channel. Post
// waits at most the configured timeout for buffer space and then drops the
// outcome, so a slow consumer can never stall a worker.
type Channel[R any] struct {
	ch      chan domain.Outcome[R]
	timeout time.Duration
	logger  *slog.Logger
	dropped atomic.Int64
	onDrop  func(context.Context, domain.Outcome[R])
}

var _ ports.Postable[struct{}] = (*Channel[struct{}])(nil)

// NewChannel creates a Channel with the given buffer size and hand-off timeout.
func NewChannel[R any](buffer int, timeout time.Duration, logger *slog.Logger) *Channel[R] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Channel[R]{
		ch:      make(chan domain.Outcome[R], max(buffer, 0)),
		timeout: timeout,
		logger:  logger,
	}
}

// Post hands outcome to the consumer, dropping it when the buffer stays full
// past the timeout or ctx ends first.
func (c *Channel[R]) Post(ctx context.Context, outcome domain.Outcome[R]) {
	select {
	case c.ch <- outcome:
		return
	default:
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case c.ch <- outcome:
	case <-timer.C:
		c.drop(ctx, outcome, "timeout")
	case <-ctx.Done():
		c.drop(ctx, outcome, "context done")
	}
}

// OnDrop registers fn to receive every outcome the channel discards. It must
// be called before the first Post.
func (c *Channel[R]) OnDrop(fn func(context.Context, domain.Outcome[R])) {
	c.onDrop = fn
}

// Outcomes is the receive side for the consumer.
func (c *Channel[R]) Outcomes() <-chan domain.Outcome[R] {
	return c.ch
}

// Dropped reports how many outcomes were discarded.
func (c *Channel[R]) Dropped() int64 {
	return c.dropped.Load()
}

func (c *Channel[R]) drop(ctx context.Context, outcome domain.Outcome[R], reason string) {
	c.dropped.Add(1)
	c.logger.WarnContext(ctx, "outcome dropped",
		slog.String("reason", reason),
		slog.Duration("timeout", c.timeout),
	)
	if c.onDrop != nil {
		c.onDrop(context.WithoutCancel(ctx), outcome)
	}
}
