// Package telemetry exports dispatcher spans over OTLP when an endpoint is
// configured through OTEL_EXPORTER_OTLP_ENDPOINT. Without one it hands out a
// no-op tracer.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	defaultServiceName = "inkshell"
	instrumentation    = "github.com/atomicstack/inkshell/internal/dispatcher"
)

// Exporter owns the tracer provider. A nil *Exporter is valid and traces
// nothing.
type Exporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// New creates an exporter when OTEL_EXPORTER_OTLP_ENDPOINT is set and
// returns nil otherwise. runID is attached to every span as a resource
// attribute.
func New(ctx context.Context, runID string) (*Exporter, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	opts, err := endpointOptions(endpoint)
	if err != nil {
		return nil, err
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		attribute.String("inkshell.run_id", runID),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Exporter{provider: provider, tracer: provider.Tracer(instrumentation)}, nil
}

// endpointOptions accepts either a bare host:port, exported to over plain
// HTTP, or a base URL such as http://localhost:4318 to which the traces
// path is appended.
func endpointOptions(endpoint string) ([]otlptracehttp.Option, error) {
	if !strings.Contains(endpoint, "://") {
		return []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		}, nil
	}
	traces, err := tracesURL(endpoint)
	if err != nil {
		return nil, err
	}
	return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(traces)}, nil
}

// tracesURL turns an OTLP base URL into the URL of its traces endpoint.
func tracesURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse OTLP endpoint: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("unsupported OTLP endpoint %q", base)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/v1/traces"
	return u.String(), nil
}

// Tracer returns the exporting tracer, or a no-op tracer when e is nil.
func (e *Exporter) Tracer() oteltrace.Tracer {
	if e == nil {
		return Noop()
	}
	return e.tracer
}

// Enabled reports whether spans leave the process.
func (e *Exporter) Enabled() bool {
	return e != nil
}

// Shutdown flushes pending spans.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}

// Noop returns a tracer that records nothing.
func Noop() oteltrace.Tracer {
	return noop.NewTracerProvider().Tracer(instrumentation)
}
