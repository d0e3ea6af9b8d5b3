package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vstore/pkg/store"
)

const defaultTracerName = "vstore"

// TraceConfig configures the tracing observer.
type TraceConfig struct {
	// TracerName is the name of the tracer (default: "vstore").
	TracerName string

	// Provider is the tracer provider. If nil, the global provider is used.
	Provider trace.TracerProvider

	// Filter selects the stores to trace. If nil, all stores are traced.
	Filter func(store string) bool

	// TraceVetoes records spans for vetoed dispatches. Disabled by default.
	TraceVetoes bool
}

// TraceOption configures the tracing observer.
type TraceOption func(*TraceConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TraceOption {
	return func(c *TraceConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) TraceOption {
	return func(c *TraceConfig) {
		c.Provider = tp
	}
}

// WithStoreFilter sets a filter on store names.
func WithStoreFilter(filter func(store string) bool) TraceOption {
	return func(c *TraceConfig) {
		c.Filter = filter
	}
}

// WithTraceVetoes enables spans for vetoed dispatches.
func WithTraceVetoes(enabled bool) TraceOption {
	return func(c *TraceConfig) {
		c.TraceVetoes = enabled
	}
}

// Tracer is a store.Observer that records a span per dispatch and per
// notification cycle.
type Tracer struct {
	config TraceConfig
	tracer trace.Tracer
}

// Tracing creates a tracing observer.
//
// Dispatches carry no context, so spans are roots. Each dispatch span is
// back-dated by its measured duration.
func Tracing(opts ...TraceOption) *Tracer {
	config := TraceConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.Provider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Tracer{
		config: config,
		tracer: tp.Tracer(config.TracerName),
	}
}

func (t *Tracer) traced(name string) bool {
	return t.config.Filter == nil || t.config.Filter(name)
}

// Dispatched implements store.Observer.
func (t *Tracer) Dispatched(name string, outcome store.Outcome, elapsed time.Duration) {
	if !t.traced(name) {
		return
	}
	if outcome == store.OutcomeVetoed && !t.config.TraceVetoes {
		return
	}

	end := time.Now()
	_, span := t.tracer.Start(context.Background(), "vstore.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(
			attribute.String("vstore.store", name),
			attribute.String("vstore.outcome", string(outcome)),
		),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(end))
}

// Notified implements store.Observer.
func (t *Tracer) Notified(name string, listeners int) {
	if !t.traced(name) {
		return
	}

	_, span := t.tracer.Start(context.Background(), "vstore.notify",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("vstore.store", name),
			attribute.Int("vstore.listeners", listeners),
		),
	)
	span.End()
}

// Subscribed implements store.Observer. Registry changes are not traced.
func (t *Tracer) Subscribed(string, int) {}
