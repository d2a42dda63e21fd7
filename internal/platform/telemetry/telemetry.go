// Package telemetry wires OpenTelemetry tracing and metrics.
//
// Setup installs global tracer and meter providers backed by either a stdout
// exporter (development) or OTLP over HTTP, and registers the instruments the
// service records:
//
//	p, err := telemetry.Setup(ctx, telemetry.Options{
//		ServiceName: "go-interactor",
//		Exporter:    telemetry.ExporterOTLP,
//		Endpoint:    "http://otel-collector:4318",
//	})
//	defer p.Shutdown(ctx)
//	p.Metrics.TaskRunTotal.Add(ctx, 1)
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Supported exporter names.
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	errUnsupportedExporter = errors.New("unsupported exporter")
	errMissingEndpoint     = errors.New("otlp exporter requires an endpoint")
)

// Options selects where telemetry goes.
type Options struct {
	ServiceName string
	Exporter    string
	// Endpoint is the collector base URL; required for ExporterOTLP. An
	// https scheme enables TLS.
	Endpoint string
}

// Providers owns the SDK providers installed by Setup. The zero value is a
// disabled setup: Metrics is nil and Shutdown does nothing.
type Providers struct {
	Tracer  *sdktrace.TracerProvider
	Meter   *sdkmetric.MeterProvider
	Metrics *Metrics
}

// Setup builds both providers, installs them and the W3C trace-context and
// baggage propagators as globals, and registers Metrics. On error nothing
// is left running.
func Setup(ctx context.Context, opts Options) (*Providers, error) {
	target, err := parseTarget(opts.Exporter, opts.Endpoint)
	if err != nil {
		return nil, err
	}
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("describing resource: %w", err)
	}

	spans, err := target.spanExporter(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}
	points, err := target.metricExporter(ctx)
	if err != nil {
		_ = spans.Shutdown(ctx)
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	p := &Providers{
		Tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spans), sdktrace.WithResource(res)),
		Meter: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(points)),
			sdkmetric.WithResource(res),
		),
	}
	if p.Metrics, err = NewMetrics(p.Meter, opts.ServiceName); err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	otel.SetTracerProvider(p.Tracer)
	otel.SetMeterProvider(p.Meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return p, nil
}

// Shutdown flushes and stops both providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		if err := p.Tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer: %w", err))
		}
	}
	if p.Meter != nil {
		if err := p.Meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter: %w", err))
		}
	}
	return errors.Join(errs...)
}

// target is a validated exporter choice.
type target struct {
	otlp     bool
	hostPort string
	insecure bool
}

func parseTarget(exporter, endpoint string) (target, error) {
	switch exporter {
	case ExporterStdout:
		return target{}, nil
	case ExporterOTLP:
		if endpoint == "" {
			return target{}, errMissingEndpoint
		}
		t := target{otlp: true, hostPort: endpoint, insecure: true}
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			t.hostPort = u.Host
			t.insecure = u.Scheme != "https"
		}
		return t, nil
	default:
		return target{}, fmt.Errorf("%w: %q", errUnsupportedExporter, exporter)
	}
}

func (t target) spanExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	if !t.otlp {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(t.hostPort)}
	if t.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

func (t target) metricExporter(ctx context.Context) (sdkmetric.Exporter, error) {
	if !t.otlp {
		return stdoutmetric.New()
	}
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(t.hostPort)}
	if t.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}
