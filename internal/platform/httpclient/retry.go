package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
)

// jitterPercent spreads each delay by up to ±25%.
const jitterPercent = 25

// retryPolicy holds the retry values extracted from config.RetryConfig.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// backoff builds a fresh schedule for one Do call. go-retry wrappers keep
// state, so a schedule must never be shared between requests.
func (p retryPolicy) backoff() retry.Backoff {
	attempt := 0
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		d := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt))
		attempt++
		if d > math.MaxInt64/2 {
			d = math.MaxInt64 / 2
		}
		return time.Duration(d), false
	})
	if p.maxInterval > 0 {
		b = retry.WithCappedDuration(p.maxInterval, b)
	}
	b = retry.WithJitterPercent(jitterPercent, b)
	return retry.WithMaxRetries(uint64(p.maxAttempts-1), b)
}

// retryableStatusError marks a response whose status asks for another attempt.
// The response is kept so the last one can be handed back to the caller.
type retryableStatusError struct {
	resp    *http.Response
	service string
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.resp.StatusCode, e.service)
}

// doWithRetry sends req until it gets a non-retryable answer or the policy
// runs out. The body is buffered so every attempt replays it. On exhaustion
// after a retryable status the last response is written to resp with its body
// open, alongside the error. The caller closes resp.Body.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.maxAttempts <= 0 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	schedule := c.logRetries(ctx, req, c.retry.backoff())

	var last *http.Response
	err = retry.Do(ctx, schedule, func(_ context.Context) error {
		if last != nil {
			drainResponseBody(last)
			last = nil
		}
		resetRequestBody(req, body)

		r, err := c.http.Do(req)
		if err != nil {
			if isRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		if isRetryableStatus(r.StatusCode) {
			last = r
			return retry.RetryableError(&retryableStatusError{resp: r, service: c.name})
		}
		*resp = r
		return nil
	})

	var statusErr *retryableStatusError
	if errors.As(err, &statusErr) && statusErr.resp == last {
		*resp = last
		return err
	}
	if last != nil {
		drainResponseBody(last)
	}
	return err
}

// logRetries wraps b so every scheduled retry is logged at WARN with the
// delay about to be waited.
func (c *Client) logRetries(ctx context.Context, req *http.Request, b retry.Backoff) retry.Backoff {
	attempt := 1
	return retry.BackoffFunc(func() (time.Duration, bool) {
		delay, stop := b.Next()
		if stop {
			return delay, stop
		}
		attempt++
		logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
			slog.String("operation", "httpclient.Do"),
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("peer_service", c.name),
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", c.retry.maxAttempts),
			slog.Duration("backoff", delay),
		)
		return delay, false
	})
}

func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	_ = req.Body.Close()
	return b, nil
}

func resetRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// drainResponseBody discards the body so the connection can be reused.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error deserves another attempt.
// Cancellation and deadline expiry never do; everything else (network errors
// included) does.
func isRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// isRetryableStatus reports whether the upstream asked us to come back later.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
