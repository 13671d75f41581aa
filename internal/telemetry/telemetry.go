// Package telemetry wires OpenTelemetry tracing from configuration.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/hongminglow/linkinbio-be/internal/config"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noop(context.Context) error { return nil }

// Setup installs a global OTLP tracer provider for cfg.ServiceName. With no
// endpoint configured tracing stays off and the returned func does nothing.
// Exporter failures are logged and leave tracing off rather than blocking
// startup.
func Setup(ctx context.Context, cfg config.Config) ShutdownFunc {
	if cfg.OTLPEndpoint == "" {
		return noop
	}

	provider, err := newProvider(ctx, cfg)
	if err != nil {
		slog.Warn("tracing disabled", "endpoint", cfg.OTLPEndpoint, "error", err)
		return noop
	}
	otel.SetTracerProvider(provider)
	slog.Info("tracing enabled", "endpoint", cfg.OTLPEndpoint, "service", cfg.ServiceName)
	return provider.Shutdown
}

func newProvider(ctx context.Context, cfg config.Config) (*sdktrace.TracerProvider, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.OTLPInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(cfg.ServiceName))
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	), nil
}
