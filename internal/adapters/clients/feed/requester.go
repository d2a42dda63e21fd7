package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-interactor/internal/platform/httpclient"
)

// requester owns the HTTP request lifecycle for the feed: request creation,
// execution via httpclient.Client, body cleanup, status validation, error
// translation, and JSON decoding.
type requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

func (r *requester) getJSON(ctx context.Context, path string, respBody any) error {
	req, err := r.client.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// Do returns both resp and err when retries are exhausted on a
		// retryable status. The status carries more meaning than the retry error.
		if resp != nil {
			defer r.closeBody(ctx, resp)
			return TranslateHTTPError(resp)
		}
		r.logger.ErrorContext(ctx, "feed request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Any("error", err),
		)
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "unexpected feed status",
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
		)
		return TranslateHTTPError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decoding feed response from %s: %w", path, err)
	}
	return nil
}

func (r *requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}
