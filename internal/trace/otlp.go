// Package trace sets up OpenTelemetry tracing for onborder.
package trace

import (
	"context"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName is the service.name resource attribute when none is set.
const DefaultServiceName = "onborder"

// OTLPExporter owns the tracer provider. Spans are exported to an OTLP/HTTP
// collector when an endpoint is configured and dropped otherwise.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	enabled  bool
}

// NewOTLPExporter creates the tracer provider. endpoint is a host:port for
// the collector, reached over plain HTTP; an empty endpoint disables export
// but still hands out working tracers.
func NewOTLPExporter(ctx context.Context, endpoint, serviceName string) (*OTLPExporter, error) {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
	)

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	enabled := endpoint != ""
	if enabled {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return &OTLPExporter{
		provider: sdktrace.NewTracerProvider(opts...),
		enabled:  enabled,
	}, nil
}

// Enabled reports whether spans leave the process.
func (e *OTLPExporter) Enabled() bool {
	return e != nil && e.enabled
}

// Tracer returns a named tracer from the provider, or a no-op tracer when
// e is nil.
func (e *OTLPExporter) Tracer(name string) oteltrace.Tracer {
	if e == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return e.provider.Tracer(name)
}

// Shutdown flushes and closes the exporter
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
