package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/mrops-br/entity-storefront/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Telemetry bundles the providers and logger handed to every component
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	Logger         *slog.Logger

	registry *prometheus.Registry
	conn     *grpc.ClientConn
}

// New builds telemetry from cfg, logging to stdout. Metrics are always
// collected for /metrics; OTLP export to cfg.Endpoint only happens when
// telemetry is enabled.
func New(cfg *config.TelemetryConfig) (*Telemetry, error) {
	return newTelemetry(cfg, os.Stdout)
}

func newTelemetry(cfg *config.TelemetryConfig, w io.Writer) (*Telemetry, error) {
	ctx := context.Background()
	t := &Telemetry{
		Logger:   newLogger(cfg, w),
		registry: prometheus.NewRegistry(),
	}
	t.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Enabled {
		t.Logger.Info("Exporting telemetry over OTLP",
			slog.String("endpoint", cfg.Endpoint),
			slog.String("service_name", cfg.ServiceName),
		)
		t.conn, err = grpc.NewClient(cfg.Endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("connecting to collector %s: %w", cfg.Endpoint, err)
		}
	}

	if t.TracerProvider, err = newTracerProvider(ctx, t.conn, res); err != nil {
		t.closeConn()
		return nil, err
	}
	if t.MeterProvider, err = newMeterProvider(ctx, t.conn, t.registry, res); err != nil {
		_ = t.TracerProvider.Shutdown(ctx)
		t.closeConn()
		return nil, err
	}

	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return t, nil
}

// NewNoOp creates telemetry that neither exports nor registers globally.
// Logs go to w as JSON at debug level.
func NewNoOp(cfg *config.TelemetryConfig, w io.Writer) *Telemetry {
	debug := *cfg
	debug.LogLevel = "debug"

	return &Telemetry{
		TracerProvider: sdktrace.NewTracerProvider(),
		MeterProvider:  metric.NewMeterProvider(),
		Logger:         newLogger(&debug, w),
	}
}

// MetricsHandler serves the Prometheus registry fed by MeterProvider
func (t *Telemetry) MetricsHandler() http.Handler {
	if t.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes pending spans and metrics and closes the collector
// connection
func (t *Telemetry) Shutdown(ctx context.Context) error {
	err := errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
		t.closeConn(),
	)
	if err != nil {
		t.Logger.Error("Failed to shutdown telemetry", slog.String("error", err.Error()))
		return err
	}

	t.Logger.Debug("Telemetry shut down")
	return nil
}

func (t *Telemetry) closeConn() error {
	if t.conn == nil {
		return nil
	}
	conn := t.conn
	t.conn = nil
	return conn.Close()
}
