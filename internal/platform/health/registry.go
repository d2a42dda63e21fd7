// Package health runs the readiness checks for the backing stores, the task
// executor and the article feed.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds a single check when New is given no timeout.
const DefaultCheckTimeout = 2 * time.Second

// Registry holds checkers in registration order. Registering a second
// checker under an existing name replaces the first.
type Registry struct {
	timeout time.Duration

	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New returns an empty registry whose checks each get at most timeout.
// A non-positive timeout means DefaultCheckTimeout.
func New(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Registry{timeout: timeout}
}

// Register adds checker, replacing any checker with the same name.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.checkers {
		if c.Name() == checker.Name() {
			r.checkers[i] = checker
			return
		}
	}
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every checker concurrently, each under its own deadline.
// Failures of ports.Optional checkers come back wrapped in
// ports.ErrDegraded.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := append([]ports.HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	results := make([]error, len(checkers))
	var g errgroup.Group
	for i, c := range checkers {
		g.Go(func() error {
			results[i] = r.check(ctx, c)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]error, len(checkers))
	for i, c := range checkers {
		out[c.Name()] = results[i]
	}
	return out
}

func (r *Registry) check(ctx context.Context, c ports.HealthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := c.HealthCheck(ctx)
	if err == nil {
		return nil
	}
	if opt, ok := c.(ports.Optional); ok && opt.Optional() {
		return fmt.Errorf("%w: %w", ports.ErrDegraded, err)
	}
	return err
}
