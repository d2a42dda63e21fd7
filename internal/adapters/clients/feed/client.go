// Package feed is the outbound adapter for the upstream article feed. It
// translates the feed's wire format into domain articles and classifies
// transport failures into categorized domain errors.
package feed

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// ServiceName identifies the feed in traces, metrics, and health results.
const ServiceName = "article-feed"

var _ ports.FeedClient = (*Client)(nil)

// Client fetches articles from the upstream feed through an
// [httpclient.Client], which supplies circuit breaking, retry, rate limiting,
// and tracing.
type Client struct {
	http   *httpclient.Client
	req    *requester
	path   string
	logger *slog.Logger
}

// NewClient creates a feed client. path is appended to the HTTP client's base
// URL; an empty path means "/articles".
func NewClient(client *httpclient.Client, path string, logger *slog.Logger) *Client {
	if path == "" {
		path = "/articles"
	}
	return &Client{
		http:   client,
		req:    &requester{client: client, logger: logger},
		path:   path,
		logger: logger,
	}
}

// FetchArticles implements ports.FeedClient.
func (c *Client) FetchArticles(ctx context.Context) ([]article.Article, error) {
	var dto ResponseDTO
	if err := c.req.getJSON(ctx, c.path, &dto); err != nil {
		return nil, err
	}

	articles, skipped := toDomain(dto)
	if skipped > 0 {
		c.logger.WarnContext(ctx, "skipped feed entries without id", slog.Int("skipped", skipped))
	}
	return articles, nil
}

// Name returns the identifier used with the health registry.
func (c *Client) Name() string {
	return ServiceName
}

// Optional marks the feed as non-essential for readiness: stored articles
// are served while it is down.
func (c *Client) Optional() bool {
	return true
}

// HealthCheck reports the feed's availability from the circuit breaker state.
// No network call is made.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}
