package obs

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce      sync.Once
	requestCounter   metric.Int64Counter
	latencyHistogram metric.Float64Histogram
	promptTokensHist metric.Int64Histogram
	decisionCounter  metric.Int64Counter

	bgOnce sync.Once
	bgCtx  context.Context
)

type meter interface {
	Int64Counter(string, ...metric.Int64CounterOption) (metric.Int64Counter, error)
	Float64Histogram(string, ...metric.Float64HistogramOption) (metric.Float64Histogram, error)
	Int64Histogram(string, ...metric.Int64HistogramOption) (metric.Int64Histogram, error)
}

func installMetrics(m meter) {
	metricsOnce.Do(func() {
		if m == nil {
			return
		}
		requestCounter, _ = m.Int64Counter("memsift.requests", metric.WithDescription("Total classification requests"))
		latencyHistogram, _ = m.Float64Histogram("memsift.request.latency_ms", metric.WithDescription("Classification latency (ms)"))
		promptTokensHist, _ = m.Int64Histogram("memsift.tokens.prompt", metric.WithDescription("Estimated prompt tokens"))
		decisionCounter, _ = m.Int64Counter("memsift.decisions", metric.WithDescription("Filter decisions by category"))
	})
}

func recordRequest(attrs ...attribute.KeyValue) {
	if requestCounter != nil {
		requestCounter.Add(backgroundContext(), 1, metric.WithAttributes(attrs...))
	}
}

func recordLatency(ms float64, attrs ...attribute.KeyValue) {
	if latencyHistogram != nil {
		latencyHistogram.Record(backgroundContext(), ms, metric.WithAttributes(attrs...))
	}
}

func recordPromptTokens(tokens int, attrs ...attribute.KeyValue) {
	if promptTokensHist != nil {
		promptTokensHist.Record(backgroundContext(), int64(tokens), metric.WithAttributes(attrs...))
	}
}

// RecordDecision counts a returned decision, labelled by category and verdict.
func RecordDecision(category string, shouldStore bool) {
	if decisionCounter == nil {
		return
	}
	decisionCounter.Add(backgroundContext(), 1, metric.WithAttributes(
		attribute.String("filter.category", category),
		attribute.Bool("filter.should_store", shouldStore),
	))
}

func backgroundContext() context.Context {
	bgOnce.Do(func() { bgCtx = context.Background() })
	return bgCtx
}
