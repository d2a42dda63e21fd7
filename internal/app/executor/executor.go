// Package executor schedules ports.Runnable values (typically tasks) on a
// fixed pool of workers fed by a bounded queue, with an optional rate limit.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-interactor/internal/app/fanout"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Scheduling errors.
var (
	ErrClosed    = errors.New("executor: closed")
	ErrQueueFull = errors.New("executor: queue full")
)

// Config sizes the pool.
type Config struct {
	Workers       int
	QueueSize     int
	RatePerSecond float64
	Burst         int
}

// Pool is a bounded worker pool. Submit never waits for a worker; it either
// enqueues or fails fast.
type Pool struct {
	queue   chan job
	workers int
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *telemetry.Metrics

	group errgroup.Group

	// stop aborts rate limiter waits once Shutdown gives up on draining.
	stopCtx context.Context
	stop    context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

type job struct {
	ctx context.Context
	r   ports.Runnable
}

// Compile-time interface checks.
var (
	_ ports.Executor      = (*Pool)(nil)
	_ ports.HealthChecker = (*Pool)(nil)
)

// New starts cfg.Workers workers. A non-positive RatePerSecond disables rate
// limiting.
func New(cfg Config, logger *slog.Logger, metrics *telemetry.Metrics) *Pool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := max(cfg.Workers, 1)

	stopCtx, stop := context.WithCancel(context.Background())
	p := &Pool{
		queue:   make(chan job, max(cfg.QueueSize, 0)),
		workers: workers,
		logger:  logger,
		metrics: metrics,
		stopCtx: stopCtx,
		stop:    stop,
	}
	if cfg.RatePerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), max(cfg.Burst, 1))
	}

	for range workers {
		p.group.Go(p.work)
	}
	return p
}

// Submit enqueues r. The runnable later runs with ctx's values but without
// its cancellation, so work accepted for a finished request still completes.
func (p *Pool) Submit(ctx context.Context, r ports.Runnable) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.reject(ctx, "closed")
		return ErrClosed
	}

	select {
	case p.queue <- job{ctx: context.WithoutCancel(ctx), r: r}:
		return nil
	default:
		p.reject(ctx, "queue_full")
		return ErrQueueFull
	}
}

// RunAll runs every runnable with at most the pool's worker count in flight
// and returns once all have finished. It does not use the queue.
func (p *Pool) RunAll(ctx context.Context, runnables []ports.Runnable) error {
	p.mu.RLock()
	closed := p.closed
	p.mu.RUnlock()
	if closed {
		return ErrClosed
	}

	results := fanout.Run(ctx, p.workers, runnables, func(ctx context.Context, r ports.Runnable) (struct{}, error) {
		if err := p.wait(ctx); err != nil {
			return struct{}{}, err
		}
		r.Run(ctx)
		return struct{}{}, nil
	})

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown stops accepting work and waits for queued work to drain. If ctx
// ends first, the rate limit is lifted for whatever is still queued and
// ctx.Err() is returned; the workers keep draining in the background.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.stop()
		return nil
	case <-ctx.Done():
		p.stop()
		return fmt.Errorf("executor drain: %w", ctx.Err())
	}
}

// QueueDepth reports how many runnables are waiting for a worker.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

// Name implements ports.HealthChecker.
func (p *Pool) Name() string {
	return "executor"
}

// HealthCheck implements ports.HealthChecker. A closed pool is unavailable.
func (p *Pool) HealthCheck(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("executor closed: %w", domain.ErrUnavailable)
	}
	return nil
}

func (p *Pool) work() error {
	for j := range p.queue {
		p.run(j)
	}
	return nil
}

func (p *Pool) run(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.ErrorContext(j.ctx, "runnable panicked",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	// Accepted work always runs. Once Shutdown stops waiting, the limiter is
	// bypassed so the queue drains.
	if err := p.wait(j.ctx); err != nil {
		p.logger.WarnContext(j.ctx, "rate limit bypassed while stopping", slog.Any("error", err))
	}
	j.r.Run(j.ctx)
}

// wait blocks on the rate limiter, giving up when ctx or the pool stops.
func (p *Pool) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.stopCtx, cancel)
	defer stop()
	return p.limiter.Wait(ctx)
}

func (p *Pool) reject(ctx context.Context, reason string) {
	if p.metrics == nil {
		return
	}
	p.metrics.ExecutorRejectedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
