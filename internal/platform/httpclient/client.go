// Package httpclient is the outbound HTTP client used by network delegates.
// Every request passes through the same layers, outermost first:
//
//	circuit breaker, rate limiter, ID headers, client span, retry, transport
//
// A client is built per downstream service and named after it:
//
//	client := httpclient.New(&cfg.Feed, "article-feed", metrics, logger)
//	req, err := client.NewRequest(ctx, http.MethodGet, "/articles", nil)
//	resp, err := client.Do(ctx, req)
//
// Inbound middleware stores request and correlation IDs with WithRequestID and
// WithCorrelationID; Do copies them onto the outbound request.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-interactor/internal/platform/config"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
)

// Client is an instrumented HTTP client bound to one downstream service.
type Client struct {
	http    *http.Client
	baseURL string
	name    string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil when unlimited
	retry   retryPolicy
	metrics *telemetry.Metrics
}

// New builds a client from cfg. name labels spans, metrics, logs and the
// health check. A nil metrics skips recording; a nil logger discards the
// breaker's state-change logs.
func New(cfg *config.ClientConfig, name string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		name:    name,
		breaker: newBreaker(name, cfg.CircuitBreaker, logger),
		retry: retryPolicy{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
	}
	if rl := cfg.RateLimit; rl.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)
	}
	return c
}

// NewRequest builds a request for path under the base URL. A nil body is
// sent as http.NoBody.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("joining %q onto base URL: %w", path, err)
	}
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request for %s: %w", method, path, err)
	}
	return req, nil
}

// Do sends req through the breaker, limiter, span and retry layers.
//
// A non-retryable answer yields resp with an open body and a nil error. When
// retries run out on a retryable status both resp (body open) and err are
// returned. Breaker rejections and transport failures return a nil resp.
// The caller closes resp.Body whenever resp is non-nil.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, fmt.Errorf("waiting for %s rate limit: %w", c.name, err)
			}
		}
		setIDHeaders(ctx, req.Header)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		req = req.WithContext(spanCtx)
		err := c.doWithRetry(spanCtx, req, &resp)
		endSpan(span, resp, err)
		return struct{}{}, err
	})

	c.record(ctx, req.Method, time.Since(start), resp, err)
	return resp, err
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the downstream service name.
func (c *Client) Name() string {
	return c.name
}
