package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20

// problemDetail is the subset of an RFC 9457 body the feed may return.
type problemDetail struct {
	Detail string `json:"detail"`
}

// TranslateHTTPError maps a non-OK feed response to a domain error.
func TranslateHTTPError(resp *http.Response) error {
	detail := parseDetail(resp)
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("feed: %s: %w", detail, domain.ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("feed: %s: %w", detail, domain.ErrForbidden)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("feed: %s: %w", detail, domain.ErrUnavailable)
	default:
		return fmt.Errorf("feed: unexpected status %d: %s: %w", resp.StatusCode, detail, domain.ErrNetwork)
	}
}

// ComposeError turns a failed fetch into a categorized *domain.Error. It is
// the error composer for tasks that run the feed delegate.
//
// Breaker rejections and upstream 5xx map to unavailable; transport failures
// (dial, DNS, timeouts, malformed bodies) map to network. Anything already
// classified keeps its category.
func ComposeError(err error) *domain.Error {
	if err == nil {
		return nil
	}

	var derr *domain.Error
	if errors.As(err, &derr) {
		return derr
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return domain.NewError(domain.CategoryUnavailable, "article feed circuit open", err)
	case errors.Is(err, context.Canceled):
		return domain.NewError(domain.CategoryNetwork, "article feed request canceled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewError(domain.CategoryNetwork, "article feed request timed out", err)
	}

	if cat := domain.Classify(err); cat != domain.CategoryUnknown {
		return domain.NewError(cat, "", err)
	}

	var netErr net.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &netErr):
		return domain.NewError(domain.CategoryNetwork, "article feed unreachable", err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return domain.NewError(domain.CategoryNetwork, "article feed returned a malformed body", err)
	default:
		return domain.NewError(domain.CategoryNetwork, "", err)
	}
}

func parseDetail(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/problem+json") {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return ""
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return ""
	}
	return pd.Detail
}
