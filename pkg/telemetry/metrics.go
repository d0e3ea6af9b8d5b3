package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vstore/pkg/store"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vstore").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.ExponentialBuckets(1e-6, 4, 10)
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vstore",
		// Dispatches are in-memory; 1µs to ~260ms.
		Buckets:  prometheus.ExponentialBuckets(1e-6, 4, 10),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics is a store.Observer that records Prometheus metrics. One Metrics
// value can observe any number of stores; series are labelled by store name.
type Metrics struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	notifyTotal      *prometheus.CounterVec
	listenerCalls    *prometheus.CounterVec
	listeners        *prometheus.GaugeVec
}

// Prometheus creates a Metrics observer and registers its collectors.
//
// Metrics collected:
//   - vstore_dispatch_total: dispatches by store and outcome
//   - vstore_dispatch_duration_seconds: dispatch latency by store
//   - vstore_notify_total: notification cycles by store
//   - vstore_listener_calls_total: listener invocations by store
//   - vstore_listeners: registered listeners by store
//
// Registering twice on the same registry panics, as with promauto.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		dispatchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_total",
			Help:        "Total number of store dispatches by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "outcome"}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Time spent resolving and applying a dispatch",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store"}),

		notifyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notify_total",
			Help:        "Total number of notification cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		listenerCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_calls_total",
			Help:        "Total number of listener invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		listeners: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners",
			Help:        "Number of registered listeners",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),
	}
}

// Dispatched implements store.Observer.
func (m *Metrics) Dispatched(name string, outcome store.Outcome, elapsed time.Duration) {
	m.dispatchTotal.WithLabelValues(name, string(outcome)).Inc()
	m.dispatchDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// Notified implements store.Observer.
func (m *Metrics) Notified(name string, listeners int) {
	m.notifyTotal.WithLabelValues(name).Inc()
	m.listenerCalls.WithLabelValues(name).Add(float64(listeners))
}

// Subscribed implements store.Observer.
func (m *Metrics) Subscribed(name string, listeners int) {
	m.listeners.WithLabelValues(name).Set(float64(listeners))
}
