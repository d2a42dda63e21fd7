package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-interactor/internal/app/notify"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
)

func TestFuture_AwaitReturnsFirstPost(t *testing.T) {
	t.Parallel()

	f := notify.NewFuture[string]()
	go f.Post(context.Background(), domain.Success("first"))

	got, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", got.Response)

	f.Post(context.Background(), domain.Success("second"))
	again, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", again.Response)

	select {
	case <-f.Done():
	default:
		t.Fatal("Done() not closed after Post")
	}
}

func TestFuture_AwaitHonorsContext(t *testing.T) {
	t.Parallel()

	f := notify.NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChannel_DeliversInOrder(t *testing.T) {
	t.Parallel()

	c := notify.NewChannel[int](4, time.Second, nil)
	for i := range 3 {
		c.Post(context.Background(), domain.Success(i))
	}

	for want := range 3 {
		got := <-c.Outcomes()
		assert.Equal(t, want, got.Response)
	}
	assert.Zero(t, c.Dropped())
}

func TestChannel_DropsWhenFullPastTimeout(t *testing.T) {
	t.Parallel()

	c := notify.NewChannel[int](1, 5*time.Millisecond, nil)
	c.Post(context.Background(), domain.Success(1))

	start := time.Now()
	c.Post(context.Background(), domain.Success(2))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
	assert.Equal(t, int64(1), c.Dropped())

	got := <-c.Outcomes()
	assert.Equal(t, 1, got.Response)
}

func TestChannel_DropsWhenContextDone(t *testing.T) {
	t.Parallel()

	c := notify.NewChannel[int](0, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.Post(ctx, domain.Success(1))
	assert.Equal(t, int64(1), c.Dropped())
}

func TestChannel_OnDropReceivesDiscardedOutcome(t *testing.T) {
	t.Parallel()

	c := notify.NewChannel[int](0, time.Millisecond, nil)
	var got []domain.Outcome[int]
	c.OnDrop(func(ctx context.Context, o domain.Outcome[int]) {
		assert.NoError(t, ctx.Err())
		got = append(got, o)
	})

	c.Post(context.Background(), domain.Success(7))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Post(ctx, domain.Success(8))

	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].Response)
	assert.Equal(t, 8, got[1].Response)
	assert.Equal(t, int64(2), c.Dropped())
}

func TestChannel_ConcurrentProducers(t *testing.T) {
	t.Parallel()

	const producers = 20
	c := notify.NewChannel[int](producers, time.Second, nil)

	var wg sync.WaitGroup
	for i := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Post(context.Background(), domain.Success(i))
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for range producers {
		seen[(<-c.Outcomes()).Response] = true
	}
	assert.Len(t, seen, producers)
}

func TestDispatcher_RoutesExactlyOneHandler(t *testing.T) {
	t.Parallel()

	var successes []int
	var failures []*domain.Error
	d := notify.NewDispatcher[int](notify.Handlers[int]{
		OnSuccess: func(_ context.Context, r int) { successes = append(successes, r) },
		OnError:   func(_ context.Context, err *domain.Error) { failures = append(failures, err) },
	})

	d.Post(context.Background(), domain.Success(5))
	derr := domain.NewError(domain.CategoryNetwork, "down", nil)
	d.Post(context.Background(), domain.Failure[int](derr))

	assert.Equal(t, []int{5}, successes)
	require.Len(t, failures, 1)
	assert.Same(t, derr, failures[0])
}

func TestHandlers_NilHandlersAreIgnored(t *testing.T) {
	t.Parallel()

	d := notify.NewDispatcher[int](notify.Handlers[int]{})
	assert.NotPanics(t, func() {
		d.Post(context.Background(), domain.Success(1))
		d.Post(context.Background(), domain.Failure[int](nil))
	})
}
