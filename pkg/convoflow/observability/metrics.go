package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flow editing metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLoad records a flow load with its outcome and duration.
	RecordLoad(ctx context.Context, success bool, duration time.Duration)

	// RecordSave records a save. Op is "create" or "update".
	RecordSave(ctx context.Context, op string, success bool, duration time.Duration)

	// RecordSyncError records a recoverable storage failure.
	RecordSyncError(ctx context.Context, op string)

	// RecordGraphSize records the size of the graph being saved.
	RecordGraphSize(ctx context.Context, nodes, edges int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	loads       metric.Int64Counter
	saves       metric.Int64Counter
	syncErrors  metric.Int64Counter
	loadLatency metric.Float64Histogram
	saveLatency metric.Float64Histogram
	graphNodes  metric.Int64Histogram
	graphEdges  metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("convoflow")

	loads, err := meter.Int64Counter("convoflow.flow.loads",
		metric.WithDescription("Number of flow loads"),
	)
	if err != nil {
		return nil, err
	}

	saves, err := meter.Int64Counter("convoflow.flow.saves",
		metric.WithDescription("Number of flow saves"),
	)
	if err != nil {
		return nil, err
	}

	syncErrors, err := meter.Int64Counter("convoflow.flow.sync_errors",
		metric.WithDescription("Number of recoverable storage failures"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("convoflow.flow.load_latency_ms",
		metric.WithDescription("Flow load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	saveLatency, err := meter.Float64Histogram("convoflow.flow.save_latency_ms",
		metric.WithDescription("Flow save latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	graphNodes, err := meter.Int64Histogram("convoflow.graph.nodes",
		metric.WithDescription("Node count of saved graphs"),
	)
	if err != nil {
		return nil, err
	}

	graphEdges, err := meter.Int64Histogram("convoflow.graph.edges",
		metric.WithDescription("Edge count of saved graphs"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		loads:       loads,
		saves:       saves,
		syncErrors:  syncErrors,
		loadLatency: loadLatency,
		saveLatency: saveLatency,
		graphNodes:  graphNodes,
		graphEdges:  graphEdges,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLoad records a flow load.
func (m *otelMetrics) RecordLoad(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.loads.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.loadLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordSave records a flow save.
func (m *otelMetrics) RecordSave(ctx context.Context, op string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("op", op),
		attribute.Bool("success", success),
	}
	m.saves.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.saveLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordSyncError records a recoverable storage failure.
func (m *otelMetrics) RecordSyncError(ctx context.Context, op string) {
	m.syncErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordGraphSize records the size of a saved graph.
func (m *otelMetrics) RecordGraphSize(ctx context.Context, nodes, edges int) {
	m.graphNodes.Record(ctx, int64(nodes))
	m.graphEdges.Record(ctx, int64(edges))
}
