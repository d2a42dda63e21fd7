package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys used as span attributes and metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrHTTPRoute   = attribute.Key("http.route")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrCategory    = attribute.Key("error.category")
	AttrOperation   = attribute.Key("repository.operation")
	AttrKind        = attribute.Key("repository.kind")
	AttrStore       = attribute.Key("repository.store")
)

// Values of AttrResult.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics holds the instruments recorded by the HTTP layer, the outbound
// client, the task machinery and the repository.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter

	TaskRunDuration       metric.Float64Histogram
	TaskRunTotal          metric.Int64Counter
	ExecutorRejectedTotal metric.Int64Counter

	RepositoryOpDuration metric.Float64Histogram
	RepositoryOpTotal    metric.Int64Counter
}

// NewMetrics registers every instrument on a meter named scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	b := &instruments{meter: mp.Meter(scope)}

	m := &Metrics{
		ServerRequestDuration: b.histogram("http.server.request.duration", "Duration of incoming HTTP requests", "s"),
		ServerRequestTotal:    b.counter("http.server.request.total", "Incoming HTTP requests", "{request}"),
		ClientRequestDuration: b.histogram("http.client.request.duration", "Duration of outgoing HTTP requests", "s"),
		ClientRequestTotal:    b.counter("http.client.request.total", "Outgoing HTTP requests", "{request}"),

		TaskRunDuration:       b.histogram("task.run.duration", "Duration of task delegate execution", "s"),
		TaskRunTotal:          b.counter("task.run.total", "Task runs by result", "{run}"),
		ExecutorRejectedTotal: b.counter("executor.rejected.total", "Tasks the executor refused to schedule", "{task}"),

		RepositoryOpDuration: b.histogram("repository.operation.duration", "Duration of repository transactions", "s"),
		RepositoryOpTotal:    b.counter("repository.operation.total", "Repository operations by result", "{operation}"),
	}
	if b.err != nil {
		return nil, b.err
	}
	return m, nil
}

// instruments keeps the first registration error.
type instruments struct {
	meter metric.Meter
	err   error
}

func (b *instruments) histogram(name, desc, unit string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.keep(name, err)
	return h
}

func (b *instruments) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.keep(name, err)
	return c
}

func (b *instruments) keep(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("registering %s: %w", name, err)
	}
}
