package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// Tracer wraps a span around one operation and records its latency and
// status when the span ends.
type Tracer interface {
	Start(ctx context.Context, methodName string, options ...trace.SpanStartOption) (context.Context, trace.Span)
	End(ctx context.Context, span trace.Span, err error, options ...trace.SpanEndOption)
}
