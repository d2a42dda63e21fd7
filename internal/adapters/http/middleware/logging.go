package middleware

import (
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
)

// Logging writes one completion line per request and hands handlers a
// context logger carrying request_id and correlation_id. Server errors log
// at ERROR and client errors at WARN. Successful health probes drop to DEBUG
// so orchestrator polling does not drown the access log. At DEBUG the
// inbound headers are logged too, with credentials masked.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			log := logger.With(
				slog.String("request_id", RequestIDFromContext(r.Context())),
				slog.String("correlation_id", CorrelationIDFromContext(r.Context())),
			)
			ctx := logging.WithLogger(r.Context(), log)

			if log.Enabled(ctx, slog.LevelDebug) {
				log.LogAttrs(ctx, slog.LevelDebug, "request received",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					headerGroup(r.Header),
				)
			}

			sr := record(w)
			next.ServeHTTP(sr, r.WithContext(ctx))

			status := sr.Status()
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", sr.bytes),
				slog.Duration("duration", time.Since(start)),
			}
			if route := routePattern(r); route != "" {
				attrs = append(attrs, slog.String("route", route))
			}
			log.LogAttrs(ctx, completionLevel(r.URL.Path, status), "request completed", attrs...)
		})
	}
}

func completionLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case strings.HasPrefix(path, "/health/"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// headerGroup renders h as a "headers" group in key order. Credential
// headers are masked; repeated values are comma-joined.
func headerGroup(h http.Header) slog.Attr {
	keys := slices.Sorted(maps.Keys(h))

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		v := strings.Join(h[k], ",")
		if logging.IsSensitiveHeader(k) {
			v = logging.Redacted
		}
		attrs = append(attrs, slog.String(k, v))
	}
	return slog.Group("headers", attrs...)
}
