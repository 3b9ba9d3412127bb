package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	cacheMetricsOnce sync.Once
	cacheMetrics     *CacheMetrics
)

// CacheMetrics holds the counters recorded by the OrderCache façade for
// each of its six public operations, plus a rejection counter broken
// down by validation error kind.
type CacheMetrics struct {
	operationsTotal metric.Int64Counter
	rejectionsTotal metric.Int64Counter
}

// GetCacheMetrics returns the CacheMetrics singleton, lazily creating
// its instruments against the current global meter provider on first
// use. Instruments are created against whatever provider Init installed
// (or the global default if Init was never called); unlike Tracer(), it
// does not call Init itself.
func GetCacheMetrics() *CacheMetrics {
	cacheMetricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter(instrumentationName)

		operationsTotal, err := meter.Int64Counter(
			"ordercache.operations.total",
			metric.WithDescription("Number of OrderCache façade calls, by operation"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			cacheMetrics = &CacheMetrics{}
			return
		}

		rejectionsTotal, err := meter.Int64Counter(
			"ordercache.rejections.total",
			metric.WithDescription("Number of OrderCache calls rejected by validation, by error kind"),
			metric.WithUnit("{call}"),
		)
		if err != nil {
			cacheMetrics = &CacheMetrics{operationsTotal: operationsTotal}
			return
		}

		cacheMetrics = &CacheMetrics{
			operationsTotal: operationsTotal,
			rejectionsTotal: rejectionsTotal,
		}
	})
	return cacheMetrics
}

// RecordOperation increments the per-operation counter.
func (m *CacheMetrics) RecordOperation(ctx context.Context, operation string) {
	if m == nil || m.operationsTotal == nil {
		return
	}
	m.operationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordRejection increments the per-error-kind rejection counter.
func (m *CacheMetrics) RecordRejection(ctx context.Context, operation, kind string) {
	if m == nil || m.rejectionsTotal == nil {
		return
	}
	m.rejectionsTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("kind", kind),
		),
	)
}

// ResetCacheMetricsForTesting drops the cached singleton so tests can
// rebuild instruments against a fresh meter provider after ResetForTesting.
func ResetCacheMetricsForTesting() {
	cacheMetricsOnce = sync.Once{}
	cacheMetrics = nil
}
