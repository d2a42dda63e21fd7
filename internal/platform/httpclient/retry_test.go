package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestRetryPolicy_BackoffGrowsWithinJitter(t *testing.T) {
	t.Parallel()

	p := retryPolicy{
		maxAttempts:     4,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     10 * time.Second,
		multiplier:      3,
	}

	for range 50 {
		b := p.backoff()
		base := 100 * time.Millisecond
		for retry := 1; retry <= 3; retry++ {
			d, stop := b.Next()
			if stop {
				t.Fatalf("retry %d: stop = true, want a delay", retry)
			}
			lo, hi := base*75/100, base*125/100
			if d < lo || d > hi {
				t.Errorf("retry %d: delay %v not in [%v, %v]", retry, d, lo, hi)
			}
			base *= 3
		}
	}
}

func TestRetryPolicy_BackoffCapped(t *testing.T) {
	t.Parallel()

	p := retryPolicy{
		maxAttempts:     12,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     500 * time.Millisecond,
		multiplier:      2,
	}

	b := p.backoff()
	for range 11 {
		d, stop := b.Next()
		if stop {
			t.Fatal("stop = true before attempts ran out")
		}
		if limit := 500 * time.Millisecond * 125 / 100; d > limit {
			t.Errorf("delay %v exceeds capped interval with jitter %v", d, limit)
		}
	}
}

func TestRetryPolicy_StopsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		maxAttempts int
		wantRetries int
	}{
		{maxAttempts: 1, wantRetries: 0},
		{maxAttempts: 3, wantRetries: 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d attempts", tt.maxAttempts), func(t *testing.T) {
			t.Parallel()

			b := retryPolicy{maxAttempts: tt.maxAttempts, initialInterval: time.Millisecond, multiplier: 2}.backoff()
			retries := 0
			for {
				if _, stop := b.Next(); stop {
					break
				}
				retries++
			}
			if retries != tt.wantRetries {
				t.Errorf("retries = %d, want %d", retries, tt.wantRetries)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped deadline", fmt.Errorf("dial: %w", context.DeadlineExceeded), false},
		{"net error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"unknown error", errors.New("something went wrong"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		statusCode int
		want       bool
	}{
		{http.StatusOK, false},
		{http.StatusNotFound, false},
		{http.StatusConflict, false},
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusServiceUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			t.Parallel()
			if got := isRetryableStatus(tt.statusCode); got != tt.want {
				t.Errorf("isRetryableStatus(%d) = %v, want %v", tt.statusCode, got, tt.want)
			}
		})
	}
}

func TestCountsAsSuccess(t *testing.T) {
	t.Parallel()

	if !countsAsSuccess(nil) {
		t.Error("countsAsSuccess(nil) = false, want true")
	}
	if !countsAsSuccess(fmt.Errorf("waiting: %w", context.Canceled)) {
		t.Error("countsAsSuccess(canceled) = false, want true")
	}
	if countsAsSuccess(errors.New("HTTP 503 from feed")) {
		t.Error("countsAsSuccess(503) = true, want false")
	}
}
