package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"cricketcli/internal/config"
)

const (
	MeterName        = "cricketcli"
	MetricsNamespace = "cricketcli"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	// TraceFile receives pretty printed JSON spans.
	TraceFile string
	// MetricsFile receives the Prometheus textfile written on Shutdown.
	MetricsFile string
}

// NewOTelConfig builds an OTelConfig from the telemetry settings and resolved paths
func NewOTelConfig(cfg config.TelemetryConfig, paths *config.Paths) *OTelConfig {
	name := cfg.ServiceName
	if name == "" {
		name = config.AppName
	}
	return &OTelConfig{
		ServiceName:    name,
		ServiceVersion: config.AppVersion,
		Enabled:        cfg.Enabled,
		TraceFile:      paths.TraceFile,
		MetricsFile:    paths.MetricsFile,
	}
}

// OTelProviders holds the OpenTelemetry providers.
// When telemetry is disabled Tracer and Meter are no-ops and Shutdown does nothing.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Logger         *slog.Logger

	traceFile   *os.File
	metricsFile string
}

// NoopProviders returns providers that record nothing
func NoopProviders(logger *slog.Logger) *OTelProviders {
	if logger == nil {
		logger = slog.Default()
	}
	return &OTelProviders{
		Tracer: tracenoop.NewTracerProvider().Tracer(MeterName),
		Meter:  metricnoop.NewMeterProvider().Meter(MeterName),
		Logger: logger,
	}
}

// InitializeOTel sets up tracing to the trace file and metrics on a private Prometheus registry
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil || !cfg.Enabled {
		logger.Debug("OpenTelemetry disabled, using noop providers")
		return NoopProviders(logger), nil
	}

	ctx := context.Background()

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	providers := &OTelProviders{
		Logger:      logger,
		metricsFile: cfg.MetricsFile,
	}

	if err := initializeTracing(cfg, res, providers); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := initializeMetrics(cfg, res, providers); err != nil {
		providers.closeTraceFile()
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.InfoContext(ctx, "OpenTelemetry initialization complete",
		slog.String("service", cfg.ServiceName),
		slog.String("trace_file", cfg.TraceFile),
		slog.String("metrics_file", cfg.MetricsFile))

	return providers, nil
}

// initializeTracing exports spans synchronously to the trace file.
// A CLI run is short, so batching would only delay writes until shutdown.
func initializeTracing(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return fmt.Errorf("failed to create trace directory: %w", err)
	}

	file, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	providers.traceFile = file
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	return nil
}

// initializeMetrics registers the OTel Prometheus exporter on a private registry
func initializeMetrics(cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(
		otelprom.WithRegisterer(registry),
		otelprom.WithNamespace(MetricsNamespace),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	providers.Registry = registry
	providers.MeterProvider = mp
	providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
	return nil
}

// FlushMetrics writes the current metric values to the metrics file in node-exporter textfile format
func (p *OTelProviders) FlushMetrics() error {
	if p.Registry == nil || p.metricsFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p.metricsFile), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(p.metricsFile, p.Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Shutdown flushes metrics, then shuts down the providers and closes the trace file
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	// Metrics must be gathered before the meter provider stops its reader
	if err := p.FlushMetrics(); err != nil {
		errs = append(errs, err)
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if err := p.closeTraceFile(); err != nil {
		errs = append(errs, fmt.Errorf("trace file close: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %v", errs)
	}

	if p.Logger != nil && p.TracerProvider != nil {
		p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	}
	return nil
}

func (p *OTelProviders) closeTraceFile() error {
	if p.traceFile == nil {
		return nil
	}
	err := p.traceFile.Close()
	p.traceFile = nil
	return err
}

// Metrics holds the dashboard's instruments
type Metrics struct {
	DeliveriesIngested metric.Int64Counter
	ChartsRendered     metric.Int64Counter
	SummariesGenerated metric.Int64Counter
	InvalidInputs      metric.Int64Counter
	OperationDuration  metric.Float64Histogram
}

// NewMetrics creates the dashboard's instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	deliveriesIngested, err := meter.Int64Counter(
		"deliveries_ingested",
		metric.WithDescription("Total number of deliveries written to the store"),
	)
	if err != nil {
		return nil, err
	}

	chartsRendered, err := meter.Int64Counter(
		"charts_rendered",
		metric.WithDescription("Total number of chart workbooks rendered"),
	)
	if err != nil {
		return nil, err
	}

	summariesGenerated, err := meter.Int64Counter(
		"summaries_generated",
		metric.WithDescription("Total number of batting summary documents generated"),
	)
	if err != nil {
		return nil, err
	}

	invalidInputs, err := meter.Int64Counter(
		"invalid_inputs",
		metric.WithDescription("Total number of rejected menu selections and inning numbers"),
	)
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram(
		"operation_duration",
		metric.WithDescription("Dashboard operation duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		DeliveriesIngested: deliveriesIngested,
		ChartsRendered:     chartsRendered,
		SummariesGenerated: summariesGenerated,
		InvalidInputs:      invalidInputs,
		OperationDuration:  operationDuration,
	}, nil
}

// RecordOperation records the duration and outcome of one dashboard operation
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	m.OperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

// RecordIngest counts deliveries written to the store for a match
func (m *Metrics) RecordIngest(ctx context.Context, matchNo, rows int) {
	if m == nil {
		return
	}
	m.DeliveriesIngested.Add(ctx, int64(rows), metric.WithAttributes(attribute.Int("match_no", matchNo)))
}

// RecordSummary counts one generated batting summary document
func (m *Metrics) RecordSummary(ctx context.Context, matchNo int) {
	if m == nil {
		return
	}
	m.SummariesGenerated.Add(ctx, 1, metric.WithAttributes(attribute.Int("match_no", matchNo)))
}

// RecordChart counts one rendered chart of the given kind
func (m *Metrics) RecordChart(ctx context.Context, chart string, inning int) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("chart", chart),
		attribute.Int("inning", inning),
	))
}

// RecordInvalidInput counts one rejected user input of the given kind
func (m *Metrics) RecordInvalidInput(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.InvalidInputs.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts the OTel trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
