// Package otel provides in-process tracing and metrics for the order
// cache's façade operations. Unlike the teacher's pkg/otel, nothing here
// exports over the network: there is no OTLP/gRPC collector to ship
// spans or metrics to, since the cache has no transport layer in scope.
// Spans and metric instruments are still created and recorded through
// the real OpenTelemetry SDK, which stays useful on its own for
// in-process correlation (parent/child span relationships, per-call
// attributes) even with nothing attached downstream.
package otel

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/erain9/ordercache/pkg/otel"

var (
	initOnce       sync.Once
	cacheTracer    trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
)

// Config controls the local resource attributes attached to every span
// and metric; there is no endpoint or collector setting, because
// nothing here is exported off-process.
type Config struct {
	ServiceName           string
	ServiceVersion        string
	CollectRuntimeMetrics bool
}

// Init builds a process-local tracer provider and meter provider and
// installs them as the OpenTelemetry globals. Safe to call more than
// once; only the first call takes effect.
func Init(cfg Config) {
	initOnce.Do(func() {
		if cfg.ServiceName == "" {
			cfg.ServiceName = "order-cache"
		}
		if cfg.ServiceVersion == "" {
			cfg.ServiceVersion = "0.1.0"
		}

		res := buildResource(cfg.ServiceName, cfg.ServiceVersion)

		tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tracerProvider)
		cacheTracer = tracerProvider.Tracer(instrumentationName)

		meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
		otel.SetMeterProvider(meterProvider)

		if cfg.CollectRuntimeMetrics {
			_ = runtime.Start(runtime.WithMinimumReadMemStatsInterval(30 * time.Second))
			_ = host.Start()
		}
	})
}

func buildResource(name, version string) *sdkresource.Resource {
	extra, err := sdkresource.New(context.Background(),
		sdkresource.WithAttributes(
			semconv.ServiceName(name),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return sdkresource.Default()
	}
	merged, err := sdkresource.Merge(sdkresource.Default(), extra)
	if err != nil {
		return sdkresource.Default()
	}
	return merged
}

// Tracer returns the cache tracer, initializing a default configuration
// (no runtime metrics) if Init has not already been called.
func Tracer() trace.Tracer {
	if cacheTracer == nil {
		Init(Config{})
	}
	return cacheTracer
}

// Shutdown releases the tracer/meter providers. Safe to call even if
// Init was never called.
func Shutdown(ctx context.Context) {
	if tracerProvider != nil {
		_ = tracerProvider.Shutdown(ctx)
	}
	if meterProvider != nil {
		_ = meterProvider.Shutdown(ctx)
	}
}

// ResetForTesting drops the initialized providers so tests can call Init
// again with a different configuration.
func ResetForTesting() {
	initOnce = sync.Once{}
	cacheTracer = nil
	tracerProvider = nil
	meterProvider = nil
}
