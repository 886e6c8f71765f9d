// Package otel wires optional OTLP trace export for the commands.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/louisbranch/solo.space/internal/platform/config"
)

// Config controls trace export.
type Config struct {
	Endpoint string `env:"SOLO_SPACE_OTEL_ENDPOINT"`
	Enabled  bool   `env:"SOLO_SPACE_OTEL_ENABLED" envDefault:"true"`
	// SampleRatio is the fraction of root traces kept; 1 keeps all.
	SampleRatio float64 `env:"SOLO_SPACE_OTEL_SAMPLE_RATIO" envDefault:"1"`
	// ShutdownTimeout bounds the final flush when a command exits.
	ShutdownTimeout time.Duration `env:"SOLO_SPACE_OTEL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("otel config: %w", err)
	}
	return cfg, nil
}

// Active reports whether spans should be exported.
func (c Config) Active() bool {
	return c.Enabled && c.Endpoint != ""
}

func (c Config) sampler() sdktrace.Sampler {
	if c.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.SampleRatio))
}

// Setup initialises tracing for serviceName.
//
// Tracing is opt-in: without an endpoint, or with SOLO_SPACE_OTEL_ENABLED
// set to false, Setup returns a no-op shutdown and registers nothing. The
// spans campaign operations open then go to the global no-op provider.
func Setup(ctx context.Context, serviceName string, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, fmt.Errorf("otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}
