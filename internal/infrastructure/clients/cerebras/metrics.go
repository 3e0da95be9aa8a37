package cerebras

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type analyzerMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	metricsOnce sync.Once
	metrics     analyzerMetrics
)

func ensureMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("github.com/ayumitra/telemed-backend/internal/infrastructure/clients/cerebras")

		metrics.requestCount, _ = meter.Int64Counter(
			"cerebras.request.count",
			metric.WithDescription("Number of symptom analysis requests"),
		)
		metrics.requestDuration, _ = meter.Float64Histogram(
			"cerebras.request.duration",
			metric.WithDescription("Symptom analysis request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		metrics.requestErrors, _ = meter.Int64Counter(
			"cerebras.request.errors",
			metric.WithDescription("Number of failed symptom analysis requests"),
		)
	})
}

func recordAnalyzeMetric(ctx context.Context, model string, duration time.Duration, err error) {
	ensureMetrics()

	attrs := metric.WithAttributes(attribute.String("model", model))
	if metrics.requestCount != nil {
		metrics.requestCount.Add(ctx, 1, attrs)
	}
	if err != nil {
		if metrics.requestErrors != nil {
			metrics.requestErrors.Add(ctx, 1, attrs)
		}
		return
	}
	if metrics.requestDuration != nil {
		metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}
