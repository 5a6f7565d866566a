package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName = "oga-analysis"
	MeterName   = "ogacli"
	TracerName  = "ogacli"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName   string
	EnableMetrics bool
	EnableTracing bool // pipeline spans to stdout, debug aid only
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:   ServiceName,
		EnableMetrics: true,
		EnableTracing: false,
	}
}

// OTelProviders holds the OpenTelemetry providers and the pipeline
// instruments built on them.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Metrics        *PipelineMetrics
}

// PipelineMetrics are the instruments recorded by the cleaning pipeline.
type PipelineMetrics struct {
	StageRows     metric.Int64Counter
	StageDuration metric.Float64Histogram
	CanonicalRows metric.Int64Gauge
}

// InitializeOTel initializes OpenTelemetry metric and trace providers.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.Bool("metrics_enabled", cfg.EnableMetrics),
		slog.Bool("tracing_enabled", cfg.EnableTracing))

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
	))
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}

	providers := &OTelProviders{}

	if cfg.EnableMetrics {
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("create prometheus exporter: %w", err)
		}

		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		metrics, err := newPipelineMetrics(providers.Meter)
		if err != nil {
			return nil, fmt.Errorf("create pipeline instruments: %w", err)
		}
		providers.Metrics = metrics
	}

	if cfg.EnableTracing {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout trace exporter: %w", err)
		}

		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(TracerName)
	} else {
		providers.Tracer = otel.Tracer(TracerName)
	}

	return providers, nil
}

// newPipelineMetrics creates the pipeline instruments on the given meter.
func newPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	stageRows, err := meter.Int64Counter("oga_pipeline_stage_rows",
		metric.WithDescription("Rows entering and leaving each pipeline stage"))
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram("oga_pipeline_stage_duration_seconds",
		metric.WithDescription("Duration of each pipeline stage"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	canonicalRows, err := meter.Int64Gauge("oga_canonical_rows",
		metric.WithDescription("Row count of the canonical athlete-event table"))
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		StageRows:     stageRows,
		StageDuration: stageDuration,
		CanonicalRows: canonicalRows,
	}, nil
}

// RecordStage records the row flow and duration for one pipeline stage.
// Safe to call on a nil receiver so the pipeline runs unchanged without
// metrics wired in.
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, rowsIn, rowsOut int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.StageRows.Add(ctx, int64(rowsIn), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("direction", "in"),
	))
	m.StageRows.Add(ctx, int64(rowsOut), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("direction", "out"),
	))
	m.StageDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

// RecordCanonicalSize records the final canonical table size.
func (m *PipelineMetrics) RecordCanonicalSize(ctx context.Context, rows int) {
	if m == nil {
		return
	}
	m.CanonicalRows.Record(ctx, int64(rows))
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
