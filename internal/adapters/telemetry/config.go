package telemetry

import (
	"os"

	"go.trai.ch/shake/internal/build"
)

const (
	// ExporterNone disables an exporter.
	ExporterNone = "none"
	// ExporterStdout writes pretty-printed JSON to stdout.
	ExporterStdout = "stdout"
	// ExporterOTLP ships spans to an OTLP/gRPC receiver.
	ExporterOTLP = "otlp"
)

// Config controls which OpenTelemetry exporters are installed.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// TraceExporter is one of "none", "stdout" or "otlp".
	TraceExporter string
	// MetricExporter is one of "none" or "stdout".
	MetricExporter string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// DefaultConfig returns a config with every exporter disabled unless the standard
// OTEL_TRACES_EXPORTER, OTEL_METRICS_EXPORTER and OTEL_EXPORTER_OTLP_ENDPOINT variables say otherwise.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "shake",
		ServiceVersion: build.Version,
		TraceExporter:  getEnvOr("OTEL_TRACES_EXPORTER", ExporterNone),
		MetricExporter: getEnvOr("OTEL_METRICS_EXPORTER", ExporterNone),
		OTLPEndpoint:   getEnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTLPInsecure:   os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "false",
	}
}

func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
