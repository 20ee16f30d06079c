package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/biduedson/reservas-api/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	Service  ServiceInfo
	Endpoint string
	Insecure bool
	Interval time.Duration
}

// InitMeter installs a global meter provider exporting over OTLP/HTTP.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.Service)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Login outcomes.
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// AuthMetrics holds the instruments for authentication and HTTP traffic.
// A nil *AuthMetrics records nothing.
type AuthMetrics struct {
	loginTotal        metric.Int64Counter
	tokenFailureTotal metric.Int64Counter
	registrationTotal metric.Int64Counter
	rateLimitedTotal  metric.Int64Counter
	requestTotal      metric.Int64Counter
	requestDuration   metric.Float64Histogram
}

// NewAuthMetrics creates the instruments on meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	m := &AuthMetrics{}
	var err error

	if m.loginTotal, err = meter.Int64Counter("auth.login.total",
		metric.WithDescription("Login attempts by outcome")); err != nil {
		return nil, fmt.Errorf("creating auth.login.total counter: %w", err)
	}
	if m.tokenFailureTotal, err = meter.Int64Counter("auth.token.failure.total",
		metric.WithDescription("Rejected bearer tokens by error code")); err != nil {
		return nil, fmt.Errorf("creating auth.token.failure.total counter: %w", err)
	}
	if m.registrationTotal, err = meter.Int64Counter("account.registration.total",
		metric.WithDescription("Created accounts")); err != nil {
		return nil, fmt.Errorf("creating account.registration.total counter: %w", err)
	}
	if m.rateLimitedTotal, err = meter.Int64Counter("http.rate_limited.total",
		metric.WithDescription("Requests rejected by the rate limiter")); err != nil {
		return nil, fmt.Errorf("creating http.rate_limited.total counter: %w", err)
	}
	if m.requestTotal, err = meter.Int64Counter("http.request.total",
		metric.WithDescription("HTTP requests by route and status")); err != nil {
		return nil, fmt.Errorf("creating http.request.total counter: %w", err)
	}
	if m.requestDuration, err = meter.Float64Histogram("http.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating http.request.duration histogram: %w", err)
	}
	return m, nil
}

// RecordLogin counts a login attempt.
func (m *AuthMetrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordTokenFailure counts a rejected bearer token.
func (m *AuthMetrics) RecordTokenFailure(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.tokenFailureTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}

// RecordRegistration counts a created account.
func (m *AuthMetrics) RecordRegistration(ctx context.Context) {
	if m == nil {
		return
	}
	m.registrationTotal.Add(ctx, 1)
}

// RecordRateLimited counts a throttled request.
func (m *AuthMetrics) RecordRateLimited(ctx context.Context, route string) {
	if m == nil {
		return
	}
	m.rateLimitedTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("route", route)))
}

// RecordRequest records a completed HTTP request.
func (m *AuthMetrics) RecordRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}
