// Package trace wires OpenTelemetry spans around service and HTTP operations.
// When tracing is disabled StartSpan returns the incoming context untouched.
package trace

import (
	"context"
	"io"
	"os"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultServiceName    = "trade-dashboard"
	DefaultServiceVersion = "1.0.0"
)

// Config controls tracer initialisation.
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Writer         io.Writer // span output, os.Stdout when nil
}

var (
	mu             sync.RWMutex
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Init installs a global tracer provider exporting to cfg.Writer.
func Init(ctx context.Context, cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = cfg.Enabled
	if !enabled {
		return nil
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = DefaultServiceVersion
	}
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.Writer), stdouttrace.WithPrettyPrint())
	if err != nil {
		enabled = false
		return err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		enabled = false
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = otel.Tracer(cfg.ServiceName)
	return nil
}

// Shutdown flushes pending spans and disables tracing.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	enabled = false
	tracer = nil
	if tracerProvider == nil {
		return nil
	}
	err := tracerProvider.Shutdown(ctx)
	tracerProvider = nil
	return err
}

// StartSpan starts a span named spanName as a child of any span in ctx.
func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	mu.RLock()
	t, on := tracer, enabled
	mu.RUnlock()

	if !on || t == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.Start(ctx, spanName, opts...)
}

// Enabled reports whether spans are being recorded.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetTraceFields returns the trace and span ids of the span in ctx, if any.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !Enabled() {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
