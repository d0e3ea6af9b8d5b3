// Package telemetry provides store.Observer implementations for Prometheus
// and OpenTelemetry.
//
//	reg := prometheus.NewRegistry()
//	metrics := telemetry.Prometheus(telemetry.WithRegistry(reg))
//
//	todos := store.New(initial,
//	    store.WithName("todos"),
//	    store.WithObserver(telemetry.Multi(metrics, telemetry.Tracing())),
//	)
package telemetry
