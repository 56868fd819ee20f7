package telemetry

import (
	"context"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger(slog.LevelInfo)
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level to be disabled")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info level to be enabled")
	}
}

func TestTraceHandlerPropagatesAttrsAndGroups(t *testing.T) {
	logger := NewLogger(slog.LevelInfo)

	derived := logger.With("component", "orders").WithGroup("request")
	if derived == nil {
		t.Fatal("expected derived logger")
	}

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer(tracerName).Start(context.Background(), "op")
	defer span.End()

	// Must not panic with an active span in context.
	derived.InfoContext(ctx, "handled", "status", 200)
}
