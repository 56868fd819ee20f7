package telemetry

import (
	"context"
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		ServiceName:    "pedidos-api",
		ServiceVersion: "0.1.0",
		Environment:    "test",
		EnableTracing:  true,
		EnableMetrics:  true,
		SampleRate:     1.0,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("accepts a valid config", func(t *testing.T) {
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
	})

	t.Run("rejects missing service name", func(t *testing.T) {
		cfg := validConfig()
		cfg.ServiceName = ""
		if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceName) {
			t.Errorf("expected ErrMissingServiceName, got: %v", err)
		}
	})

	t.Run("rejects missing service version", func(t *testing.T) {
		cfg := validConfig()
		cfg.ServiceVersion = ""
		if err := cfg.Validate(); !errors.Is(err, ErrMissingServiceVersion) {
			t.Errorf("expected ErrMissingServiceVersion, got: %v", err)
		}
	})

	t.Run("rejects sample rate out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.SampleRate = 1.5
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("expected ErrInvalidSampleRate, got: %v", err)
		}
	})
}

func TestInitializeAndShutdown(t *testing.T) {
	t.Run("initializes tracing and metrics with provided exporters", func(t *testing.T) {
		ctx := context.Background()

		tel, err := Initialize(ctx, validConfig(),
			WithTraceExporter(NewNoopTraceExporter()),
			WithMetricExporter(NewNoopMetricExporter()),
		)
		if err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}

		if tel.TracerProvider() == nil {
			t.Error("expected tracer provider to be set")
		}
		if tel.MeterProvider() == nil {
			t.Error("expected meter provider to be set")
		}

		if err := tel.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown() failed: %v", err)
		}
	})

	t.Run("skips providers when disabled", func(t *testing.T) {
		cfg := validConfig()
		cfg.EnableTracing = false
		cfg.EnableMetrics = false

		tel, err := Initialize(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}

		if tel.TracerProvider() != nil {
			t.Error("expected no tracer provider")
		}
		if tel.MeterProvider() != nil {
			t.Error("expected no meter provider")
		}
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := Initialize(context.Background(), Config{})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got: %v", err)
		}
	})
}
