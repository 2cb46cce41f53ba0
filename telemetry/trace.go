package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/pitabwire/util"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by spans and the latency histogram.
//
//nolint:gochecknoglobals // attribute keys are reused by views and tests
var (
	AttrMethodKey  = attribute.Key("itoolpack_method")
	AttrPackageKey = attribute.Key("itoolpack_package")
	AttrStatusKey  = attribute.Key("itoolpack_status")
	AttrErrorKey   = attribute.Key("itoolpack_error")
)

type timingKey struct{}

// timing travels in the span context from Start to End.
type timing struct {
	began  time.Time
	method string
}

type packageTracer struct {
	pkg     string
	spans   trace.Tracer
	latency metric.Float64Histogram
}

// NewTracer returns a Tracer whose spans come from the global provider and
// whose latencies land in the pkg+"/latency" histogram.
func NewTracer(pkg string, options ...trace.TracerOption) Tracer {
	return &packageTracer{
		pkg:     pkg,
		spans:   otel.Tracer(pkg, options...),
		latency: LatencyMeasure(pkg),
	}
}

//nolint:spancheck // the caller ends the span through End
func (p *packageTracer) Start(
	ctx context.Context,
	methodName string,
	options ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	options = append(options, trace.WithAttributes(AttrMethodKey.String(methodName)))
	ctx, span := p.spans.Start(ctx, methodName, options...)
	return context.WithValue(ctx, timingKey{}, timing{
		began:  time.Now(),
		method: p.pkg + "/" + methodName,
	}), span
}

// End closes span with a status derived from err. The latency is recorded only
// when ctx came from Start.
func (p *packageTracer) End(ctx context.Context, span trace.Span, err error, options ...trace.SpanEndOption) {
	status := ErrorCode(err)
	if err == nil {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetAttributes(AttrErrorKey.String(err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		options = append(options, trace.WithStackTrace(true))
	}
	span.End(options...)

	t, ok := ctx.Value(timingKey{}).(timing)
	if !ok {
		util.Log(ctx).WithField("package", p.pkg).Warn("span ended without start timing, latency dropped")
		return
	}

	p.latency.Record(ctx, float64(time.Since(t.began).Milliseconds()),
		metric.WithAttributes(AttrStatusKey.String(status), AttrMethodKey.String(t.method)))
}

// StatusCoder is implemented by errors that know their own metric status.
type StatusCoder interface {
	StatusCode() string
}

// ErrorCode maps err to the status attribute recorded on spans and metrics.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline exceeded"
	}
	var coder StatusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}
	return "err"
}
