package kafka

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordPublish(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordPublish(ctx, TopicOrderCreated, 0.02, true)
	metrics.RecordPublish(ctx, TopicOrderCreated, 0.5, false)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "kafka_producer_latency_seconds" {
				found = true
				histogram, ok := m.Data.(metricdata.Histogram[float64])
				if !ok {
					t.Fatal("expected Histogram[float64] data type")
				}
				if len(histogram.DataPoints) != 2 {
					t.Errorf("expected 2 data points (success and error), got %d", len(histogram.DataPoints))
				}
			}
		}
	}

	if !found {
		t.Error("kafka_producer_latency_seconds metric not found")
	}
}
