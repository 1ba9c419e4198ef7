// Package tracing installs the global OpenTelemetry tracer provider that the
// ledger services pick up through otel.Tracer.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"inu/internal/platform/config"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Provider owns the SDK tracer provider. A disabled Provider leaves the
// global no-op provider in place.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Option tweaks provider construction.
type Option func(*options)

type options struct {
	stdout io.Writer
}

// WithStdoutWriter redirects the stdout exporter.
func WithStdoutWriter(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

// Setup builds the exporter selected by cfg.Exporter and registers the
// provider globally.
func Setup(ctx context.Context, cfg config.TracingConfig, opts ...Option) (*Provider, error) {
	o := options{stdout: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	var exporter sdktrace.SpanExporter
	var err error
	switch cfg.Exporter {
	case "", ExporterNone:
		return &Provider{}, nil
	case ExporterStdout:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(o.stdout))
	case ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported trace exporter %q", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s trace exporter: %w", cfg.Exporter, err)
	}

	rate := cfg.SampleRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	return &Provider{provider: provider}, nil
}

func (p *Provider) Enabled() bool {
	return p.provider != nil
}

// Shutdown flushes buffered spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
