// Package observability wires OpenTelemetry tracing and metrics.
//
// Setup installs OTLP/HTTP exporters for whatever is enabled and returns a
// shutdown function; with both disabled the global no-op providers stay in
// place and instrumentation costs nothing.
//
//	shutdown, err := observability.Setup(ctx, cfg, observability.ServiceInfo{Name: "reservas-api"})
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewAuthMetrics(observability.Meter(observability.InstrumentationName))
//	metrics.RecordLogin(ctx, observability.OutcomeSuccess)
package observability
