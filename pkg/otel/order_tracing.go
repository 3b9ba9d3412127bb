package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Span names, one per façade operation.
	SpanAdd                     = "cache.add"
	SpanCancel                  = "cache.cancel"
	SpanCancelForUser           = "cache.cancel_for_user"
	SpanCancelForSecurityMinQty = "cache.cancel_for_security_min_qty"
	SpanMatchingSize            = "cache.matching_size"
	SpanAllOrders               = "cache.all_orders"

	// Attribute keys.
	AttributeOrderID    = "order.id"
	AttributeSecurityID = "security.id"
	AttributeUser       = "order.user"
	AttributeMinQty     = "cancel.min_qty"
	AttributeResult     = "cache.result"
)

// StartSpan starts a new span for a façade operation.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// AddAttributes adds attributes to an already-started span.
func AddAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
}
