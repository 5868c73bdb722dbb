package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/core/ports"
	"go.trai.ch/zerr"
)

const instrumentationName = "go.trai.ch/shake"

var _ ports.Telemetry = (*OTel)(nil)

// OTel implements ports.Telemetry with one span per vertex and a counter of
// completed vertices by outcome.
type OTel struct {
	tracer    trace.Tracer
	completed metric.Int64Counter
	shutdown  []func(context.Context) error
}

// New installs the exporters selected by cfg as the global providers and returns
// a recorder using them. Disabled exporters leave the global no-op providers in place.
func New(ctx context.Context, cfg Config) (*OTel, error) {
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	var shutdown []func(context.Context) error

	if cfg.TraceExporter != ExporterNone {
		tp, err := newTracerProvider(ctx, cfg, res)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		shutdown = append(shutdown, tp.Shutdown)
	}

	if cfg.MetricExporter != ExporterNone {
		mp, err := newMeterProvider(cfg, res)
		if err != nil {
			return nil, err
		}
		otel.SetMeterProvider(mp)
		shutdown = append(shutdown, mp.Shutdown)
	}

	t, err := NewWithProviders(otel.GetTracerProvider(), otel.GetMeterProvider())
	if err != nil {
		return nil, err
	}
	t.shutdown = shutdown
	return t, nil
}

// NewWithProviders returns a recorder using the given providers.
func NewWithProviders(tp trace.TracerProvider, mp metric.MeterProvider) (*OTel, error) {
	completed, err := mp.Meter(instrumentationName).Int64Counter(
		"shake.targets.completed",
		metric.WithDescription("Test targets completed, by outcome."),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create counter")
	}
	return &OTel{
		tracer:    tp.Tracer(instrumentationName),
		completed: completed,
	}, nil
}

// Record starts a span named after the vertex.
func (t *OTel) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("shake.target", name)))
	v := &spanVertex{ctx: ctx, span: span, completed: t.completed}
	v.stdout = NewBatchProcessor(0, 0, v.logEvent)
	return ctx, v
}

// Close flushes and shuts the installed providers down.
func (t *OTel) Close() error {
	ctx := context.Background()
	var errs []error
	for _, fn := range t.shutdown {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return zerr.Wrap(err, "failed to shut telemetry down")
	}
	return nil
}

func newTracerProvider(ctx context.Context, cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case ExporterOTLP:
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err = otlptracegrpc.New(ctx, opts...)
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownExporter, "invalid telemetry config"), "exporter", cfg.TraceExporter)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create trace exporter"), "exporter", cfg.TraceExporter)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}

func newMeterProvider(cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	if cfg.MetricExporter != ExporterStdout {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownExporter, "invalid telemetry config"), "exporter", cfg.MetricExporter)
	}
	exporter, err := stdoutmetric.New(stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create metric exporter"), "exporter", cfg.MetricExporter)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	), nil
}
