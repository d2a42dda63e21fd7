// Package fanout runs a function across a slice of items with bounded
// concurrency, preserving input order in the results. The executor uses it
// to run a batch of tasks and wait for all of them.
package fanout

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrPanic marks a result whose function panicked.
var ErrPanic = errors.New("fanout: item panicked")

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value R
	Err   error
}

// Run executes fn for each item using at most maxWorkers concurrent
// goroutines. Results are returned in the same order as the input items.
//
// Items are independent: one failure does not cancel the others. Once ctx is
// done, items that have not started record ctx.Err() without calling fn.
// Items already running finish; fn is responsible for checking ctx itself.
// A panic in fn is recovered into an ErrPanic result.
//
// Run blocks until every started item completes. If items is empty, it
// returns an empty non-nil slice immediately. maxWorkers below 1 is treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	results := make([]Result[R], len(items))

	var g errgroup.Group
	g.SetLimit(max(maxWorkers, 1))

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			results[i] = Result[R]{Err: err}
			continue
		}
		// Go blocks until a worker slot frees up.
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result[R]{Err: err}
				return nil
			}
			results[i] = call(ctx, fn, item)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func call[T, R any](ctx context.Context, fn func(context.Context, T) (R, error), item T) (res Result[R]) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result[R]{Err: fmt.Errorf("%w: %v", ErrPanic, rec)}
		}
	}()
	v, err := fn(ctx, item)
	return Result[R]{Value: v, Err: err}
}
