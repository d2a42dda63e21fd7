// Package interactor provides Task, a single unit of work that executes a
// delegate and reports the outcome to exactly one postable per run.
//
// A Task has no scheduler of its own. Run executes synchronously in the
// calling goroutine, so any executor that calls Run satisfies the contract:
//
//	task, err := interactor.New(delegate, postable, interactor.WithName("sync"))
//	if err != nil { ... }
//	pool.Submit(ctx, task)
package interactor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-interactor/internal/domain"
	"github.com/jsamuelsen11/go-interactor/internal/platform/logging"
	"github.com/jsamuelsen11/go-interactor/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// Construction errors.
var (
	ErrNilDelegate = errors.New("interactor: nil delegate")
	ErrNilPostable = errors.New("interactor: nil postable")
)

const tracerName = "github.com/jsamuelsen11/go-interactor/interactor"

// ErrorComposer turns a delegate failure into the categorized error that is
// posted. It must never return nil for a non-nil err.
type ErrorComposer func(err error) *domain.Error

// ComposeError is the default ErrorComposer. It keeps an existing
// *domain.Error and otherwise classifies err by its sentinel.
func ComposeError(err error) *domain.Error {
	return domain.AsError(err)
}

// Option configures a Task.
type Option func(*config)

type config struct {
	name     string
	compose  ErrorComposer
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	loggable bool
}

// WithName labels the task in logs, spans and metrics.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithErrorComposer replaces ComposeError.
func WithErrorComposer(fn ErrorComposer) Option {
	return func(c *config) { c.compose = fn }
}

// WithLogger sets the task logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithMetrics records run counts and durations.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithTracerProvider sets where run spans go. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracer = tp.Tracer(tracerName) }
}

// WithLoggable sets the initial value of the loggable flag.
func WithLoggable(on bool) Option {
	return func(c *config) { c.loggable = on }
}

// Task binds one delegate to one postable. Both are fixed at construction.
// A Task may be run more than once; each run posts its own outcome.
type Task[R any] struct {
	id       string
	name     string
	delegate ports.Delegate[R]
	postable ports.Postable[R]
	compose  ErrorComposer
	logger   *slog.Logger
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	loggable atomic.Bool
}

var _ ports.Runnable = (*Task[struct{}])(nil)

// New creates a task. A nil delegate or postable is rejected, including a
// non-nil interface wrapping a nil func or pointer.
func New[R any](delegate ports.Delegate[R], postable ports.Postable[R], opts ...Option) (*Task[R], error) {
	if isNil(delegate) {
		return nil, ErrNilDelegate
	}
	if isNil(postable) {
		return nil, ErrNilPostable
	}

	c := config{name: "task", compose: ComposeError}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.tracer == nil {
		c.tracer = otel.GetTracerProvider().Tracer(tracerName)
	}
	if c.compose == nil {
		c.compose = ComposeError
	}

	id := ulid.Make().String()
	t := &Task[R]{
		id:       id,
		name:     c.name,
		delegate: delegate,
		postable: postable,
		compose:  c.compose,
		logger:   c.logger.With(slog.String("task_id", id), slog.String("task", c.name)),
		metrics:  c.metrics,
		tracer:   c.tracer,
	}
	t.loggable.Store(c.loggable)
	return t, nil
}

// ID returns the task's unique, time-ordered identifier.
func (t *Task[R]) ID() string { return t.id }

// Name returns the task label.
func (t *Task[R]) Name() string { return t.name }

// Delegate returns the delegate the task executes.
func (t *Task[R]) Delegate() ports.Delegate[R] { return t.delegate }

// Loggable reports whether run lifecycle logging is enabled.
func (t *Task[R]) Loggable() bool { return t.loggable.Load() }

// SetLoggable toggles run lifecycle logging. It has no effect on behavior.
func (t *Task[R]) SetLoggable(on bool) { t.loggable.Store(on) }

// Run executes the delegate once and then notifies once, in that order.
func (t *Task[R]) Run(ctx context.Context) {
	t.Notify(ctx, t.Execute(ctx))
}

// Notify forwards outcome to the postable verbatim. A panicking postable is
// logged and does not propagate to the caller.
func (t *Task[R]) Notify(ctx context.Context, outcome domain.Outcome[R]) {
	defer func() {
		if rec := recover(); rec != nil {
			t.logger.ErrorContext(ctx, "postable panicked",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	t.postable.Post(ctx, outcome)
}

// Execute runs the delegate and captures its result. Errors are composed into
// a *domain.Error and panics are recovered as internal errors, so Execute
// always returns an outcome.
func (t *Task[R]) Execute(ctx context.Context) (outcome domain.Outcome[R]) {
	ctx, span := t.tracer.Start(ctx, "task "+t.name,
		trace.WithAttributes(attribute.String("task.id", t.id)),
	)
	ctx = logging.WithLogger(ctx, t.logger)
	start := time.Now()

	if t.Loggable() {
		t.logger.DebugContext(ctx, "task started")
	}

	defer func() {
		t.finish(ctx, span, outcome, time.Since(start))
	}()

	defer func() {
		if rec := recover(); rec != nil {
			outcome = domain.Failure[R](panicError(rec))
			t.logger.ErrorContext(ctx, "task panicked",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	response, err := t.delegate.Execute(ctx)
	if err != nil {
		return domain.Failure[R](t.compose(err))
	}
	return domain.Success(response)
}

func (t *Task[R]) finish(ctx context.Context, span trace.Span, outcome domain.Outcome[R], elapsed time.Duration) {
	defer span.End()

	result := telemetry.ResultSuccess
	category := ""
	if !outcome.Succeeded() {
		result = telemetry.ResultError
		category = string(outcome.Err.Category)
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Err.Error())
	}

	if t.metrics != nil {
		attrs := metric.WithAttributes(
			attribute.String("task", t.name),
			telemetry.AttrResult.String(result),
			telemetry.AttrCategory.String(category),
		)
		t.metrics.TaskRunTotal.Add(ctx, 1, attrs)
		t.metrics.TaskRunDuration.Record(ctx, elapsed.Seconds(), attrs)
	}

	if t.Loggable() {
		attrs := []any{
			slog.String("result", result),
			slog.Duration("duration", elapsed),
		}
		if category != "" {
			attrs = append(attrs, slog.String("category", category), slog.Any("error", outcome.Err))
		}
		t.logger.DebugContext(ctx, "task finished", attrs...)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func panicError(rec any) *domain.Error {
	if err, ok := rec.(error); ok {
		return domain.NewError(domain.CategoryInternal, "task panicked: "+err.Error(), err)
	}
	return domain.NewError(domain.CategoryInternal, fmt.Sprintf("task panicked: %v", rec), nil)
}
