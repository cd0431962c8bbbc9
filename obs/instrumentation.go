package obs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestRecorder encapsulates per-call tracing/metrics bookkeeping.
type RequestRecorder struct {
	start time.Time
	span  trace.Span
	attrs []attribute.KeyValue
}

// StartRequest starts a span and prepares metric aggregation.
func StartRequest(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, *RequestRecorder) {
	ctx, span := Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
	recordRequest(attrs...)
	return ctx, &RequestRecorder{start: time.Now(), span: span, attrs: attrs}
}

// End finalizes span/metrics for the call. promptTokens is the estimated
// token size of the prompt sent; zero when the call never reached a backend.
func (r *RequestRecorder) End(err error, promptTokens int) {
	if r == nil {
		return
	}
	if err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, err.Error())
	}
	latency := time.Since(r.start).Seconds() * 1000
	recordLatency(latency, r.attrs...)
	if promptTokens > 0 {
		recordPromptTokens(promptTokens, r.attrs...)
	}
	r.span.End()
}

// AddAttributes appends attributes to both span and subsequent metrics.
func (r *RequestRecorder) AddAttributes(attrs ...attribute.KeyValue) {
	if r == nil {
		return
	}
	r.attrs = append(r.attrs, attrs...)
	r.span.SetAttributes(attrs...)
}
