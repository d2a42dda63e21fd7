package httpclient

import (
	"context"
	"net/http"
)

const (
	headerRequestID     = "X-Request-ID"
	headerCorrelationID = "X-Correlation-ID"
)

type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

// WithRequestID stores the inbound request ID for propagation on outbound calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithCorrelationID stores the correlation ID for propagation on outbound calls.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func setIDHeaders(ctx context.Context, h http.Header) {
	for key, header := range map[idKey]string{
		requestIDKey:     headerRequestID,
		correlationIDKey: headerCorrelationID,
	} {
		if id, _ := ctx.Value(key).(string); id != "" {
			h.Set(header, id)
		}
	}
}
