package feed_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/clients/feed"
	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/domain/article"
	"github.com/jsamuelsen11/go-interactor/internal/platform/config"
	"github.com/jsamuelsen11/go-interactor/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-interactor/mocks"
)

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   1,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
	}
}

func newClient(t *testing.T, handler http.HandlerFunc) *feed.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := slog.New(slog.DiscardHandler)
	return feed.NewClient(httpclient.New(testConfig(srv.URL), feed.ServiceName, nil, logger), "/articles", logger)
}

func TestClient_FetchArticles(t *testing.T) {
	t.Parallel()

	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articles", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"items":[
			{"id":"a1","title":"First","tags":["go"],"published_at":%q},
			{"id":"","title":"No id"},
			{"id":"a2","title":"Second"}
		]}`, published.Format(time.RFC3339))
	})

	got, err := c.FetchArticles(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, []string{"go"}, got[0].Tags)
	assert.True(t, got[0].CreatedAt.Equal(published))
	assert.Equal(t, "a2", got[1].ID)
	assert.True(t, got[1].CreatedAt.IsZero())
}

func TestClient_FetchArticlesTranslatesStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		want   domain.Category
	}{
		{name: "not found", status: http.StatusNotFound, want: domain.CategoryNotFound},
		{name: "forbidden", status: http.StatusForbidden, want: domain.CategoryForbidden},
		{name: "server error", status: http.StatusBadGateway, want: domain.CategoryUnavailable},
		{name: "throttled", status: http.StatusTooManyRequests, want: domain.CategoryUnavailable},
		{name: "teapot", status: http.StatusTeapot, want: domain.CategoryNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"upstream says no"}`))
			})

			_, err := c.FetchArticles(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "upstream says no")
			assert.Equal(t, tt.want, feed.ComposeError(err).Category)
		})
	}
}

func TestClient_MalformedBodyIsNetworkError(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[`))
	})

	_, err := c.FetchArticles(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.CategoryNetwork, feed.ComposeError(err).Category)
}

func TestClient_HealthFollowsBreaker(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.NoError(t, c.HealthCheck(context.Background()))
	assert.Equal(t, feed.ServiceName, c.Name())
	assert.True(t, c.Optional())

	_, err := c.FetchArticles(context.Background())
	require.Error(t, err)

	require.Error(t, c.HealthCheck(context.Background()))

	_, err = c.FetchArticles(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.CategoryUnavailable, feed.ComposeError(err).Category)
}

func TestComposeError(t *testing.T) {
	t.Parallel()

	already := domain.NewError(domain.CategoryConflict, "kept", nil)

	tests := []struct {
		name string
		err  error
		want domain.Category
	}{
		{name: "domain error kept", err: already, want: domain.CategoryConflict},
		{name: "breaker open", err: gobreaker.ErrOpenState, want: domain.CategoryUnavailable},
		{name: "breaker half-open limit", err: gobreaker.ErrTooManyRequests, want: domain.CategoryUnavailable},
		{name: "deadline", err: fmt.Errorf("GET: %w", context.DeadlineExceeded), want: domain.CategoryNetwork},
		{name: "canceled", err: context.Canceled, want: domain.CategoryNetwork},
		{name: "dial", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: domain.CategoryNetwork},
		{name: "sentinel", err: fmt.Errorf("x: %w", domain.ErrForbidden), want: domain.CategoryForbidden},
		{name: "unknown", err: errors.New("boom"), want: domain.CategoryNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := feed.ComposeError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Category)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	assert.Nil(t, feed.ComposeError(nil))
}

func TestDelegate(t *testing.T) {
	t.Parallel()

	_, err := feed.NewDelegate(nil)
	require.ErrorIs(t, err, feed.ErrNilClient)

	client := mocks.NewMockFeedClient(t)
	client.EXPECT().FetchArticles(mock.Anything).Return([]article.Article{{ID: "a1"}}, nil).Once()

	d, err := feed.NewDelegate(client)
	require.NoError(t, err)

	got, err := d.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []article.Article{{ID: "a1"}}, got)
}
