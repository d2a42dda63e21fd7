package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Introspector is a use case performance module that opens a span on Start
// and closes it on End. Spans are keyed by trace ID, so one Introspector can
// observe concurrent executions.
type Introspector struct {
	name   string
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]inflight
}

type inflight struct {
	span  trace.Span
	start time.Time
}

// NewIntrospector returns an Introspector that names its spans "usecase <name>".
// A nil tp uses the global tracer provider.
func NewIntrospector(name string, tp trace.TracerProvider) *Introspector {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Introspector{
		name:   name,
		tracer: tp.Tracer("github.com/jsamuelsen11/go-interactor/usecase"),
		spans:  make(map[string]inflight),
	}
}

// Name returns the module name.
func (i *Introspector) Name() string {
	return i.name
}

// Start opens a span for traceID.
func (i *Introspector) Start(ctx context.Context, traceID string) {
	_, span := i.tracer.Start(ctx, "usecase "+i.name,
		trace.WithAttributes(attribute.String("usecase.trace_id", traceID)),
	)

	i.mu.Lock()
	i.spans[traceID] = inflight{span: span, start: time.Now()}
	i.mu.Unlock()
}

// End closes the span opened for traceID. Unknown trace IDs are ignored.
func (i *Introspector) End(_ context.Context, traceID string) {
	i.mu.Lock()
	f, ok := i.spans[traceID]
	delete(i.spans, traceID)
	i.mu.Unlock()

	if !ok {
		return
	}
	f.span.SetAttributes(attribute.Float64("usecase.duration_ms", float64(time.Since(f.start).Microseconds())/1000))
	f.span.End()
}

// Inflight reports how many executions have started but not ended.
func (i *Introspector) Inflight() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.spans)
}
