package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the convoflow tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("convoflow")

// SpanManager handles trace span lifecycle for storage operations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartLoadSpan starts a span for a flow load.
	StartLoadSpan(ctx context.Context, agentID string) (context.Context, trace.Span)

	// StartSaveSpan starts a span for a flow save. Op is "create" or
	// "update".
	StartSaveSpan(ctx context.Context, flowID, op string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartLoadSpan starts a span for a flow load.
func (m *otelSpanManager) StartLoadSpan(ctx context.Context, agentID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "convoflow.flow.load",
		trace.WithAttributes(
			attribute.String("agent.id", agentID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// StartSaveSpan starts a span for a flow save.
func (m *otelSpanManager) StartSaveSpan(ctx context.Context, flowID, op string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "convoflow.flow.save",
		trace.WithAttributes(
			attribute.String("flow.id", flowID),
			attribute.String("save.op", op),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
