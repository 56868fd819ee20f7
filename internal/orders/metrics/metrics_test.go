package metrics

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = m
		}
	}
	return found
}

func TestNewMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}
	if metrics == nil {
		t.Fatal("NewMetrics() returned nil")
	}
}

func TestRecordOrderCreated(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordOrderCreated(ctx, true)
	metrics.RecordOrderCreated(ctx, false)
	metrics.RecordOrderCreationDuration(ctx, 0.2)

	found := collect(t, reader)

	counter, ok := found["orders_created_total"]
	if !ok {
		t.Fatal("orders_created_total metric not found")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) != 2 {
		t.Errorf("expected 2 data points (success and error), got %d", len(sum.DataPoints))
	}

	if _, ok := found["order_creation_duration_seconds"]; !ok {
		t.Error("order_creation_duration_seconds metric not found")
	}
}

func TestRecordStatusUpdates(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordStatusUpdates(ctx, 3)
	metrics.RecordStatusUpdates(ctx, 2)

	found := collect(t, reader)

	counter, ok := found["order_status_updates_total"]
	if !ok {
		t.Fatal("order_status_updates_total metric not found")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("expected Sum[int64] data type")
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 5 {
		t.Errorf("expected a single data point with value 5, got %+v", sum.DataPoints)
	}
}
