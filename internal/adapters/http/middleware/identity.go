package middleware

import (
	"context"
	"net/http"

	"github.com/oklog/ulid/v2"

	"github.com/jsamuelsen11/go-interactor/internal/platform/httpclient"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"

	maxIDLength = 128
)

type identityKey int

const (
	requestIDKey identityKey = iota
	correlationIDKey
)

// WithRequestID stores id in ctx for handlers and for outbound feed calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return httpclient.WithRequestID(context.WithValue(ctx, requestIDKey, id), id)
}

// RequestIDFromContext returns the request ID, or "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCorrelationID stores id in ctx for handlers and for outbound feed calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return httpclient.WithCorrelationID(context.WithValue(ctx, correlationIDKey, id), id)
}

// CorrelationIDFromContext returns the correlation ID, or "" outside a request.
func CorrelationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// RequestID assigns every request an ID. A well-formed X-Request-ID from the
// caller is kept; anything else is replaced with a fresh ULID so IDs sort by
// arrival in logs. The ID is echoed in the response headers.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sanitizeID(r.Header.Get(headerRequestID))
			if !ok {
				id = ulid.Make().String()
			}
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}

// CorrelationID ties a request to the wider flow it belongs to. Without a
// usable X-Correlation-ID header it falls back to the request ID, so it has
// to run after RequestID.
func CorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sanitizeID(r.Header.Get(headerCorrelationID))
			if !ok {
				id = RequestIDFromContext(r.Context())
			}
			w.Header().Set(headerCorrelationID, id)
			next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), id)))
		})
	}
}

// sanitizeID accepts caller-supplied IDs of printable ASCII up to
// maxIDLength bytes. IDs end up in log lines and outbound headers.
func sanitizeID(id string) (string, bool) {
	if id == "" || len(id) > maxIDLength {
		return "", false
	}
	for i := range len(id) {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return "", false
		}
	}
	return id, true
}
