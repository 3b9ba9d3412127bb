package core

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	otelattr "go.opentelemetry.io/otel/attribute"

	"github.com/erain9/ordercache/pkg/metrics"
	"github.com/erain9/ordercache/pkg/otel"
)

func otelAttrs(key, value string) []otelattr.KeyValue {
	return []otelattr.KeyValue{otelattr.String(key, value)}
}

const (
	opAdd                     = "add"
	opCancel                  = "cancel"
	opCancelForUser           = "cancel_for_user"
	opCancelForSecurityMinQty = "cancel_for_security_min_qty"
	opMatchingSize            = "matching_size"
	opAllOrders               = "all_orders"
)

// OrderCache is the public façade over a CacheBackend: it validates
// input, decodes order ids into slots, and sequences backend calls,
// wrapping each of the six operations in a trace span and a latency
// sample, and logging rejections and mutations with structured fields
// (MatchingSize and AllOrders do not log), the way the teacher's
// OrderBook wraps OrderBookBackend calls.
type OrderCache struct {
	backend  CacheBackend
	latency  *metrics.Recorder
	metrics  *otel.CacheMetrics
}

// NewOrderCache creates a façade over backend.
func NewOrderCache(backend CacheBackend) *OrderCache {
	return &OrderCache{
		backend: backend,
		latency: metrics.NewRecorder(),
		metrics: otel.GetCacheMetrics(),
	}
}

// Add validates order and, if well-formed and its decoded slot is not
// already alive, commits it to the backend. A duplicate id is a silent
// no-op per spec.md section 4.6.
func (c *OrderCache) Add(ctx context.Context, in OrderInput) error {
	defer c.record(ctx, opAdd, time.Now())

	ctx, span := otel.StartSpan(ctx, otel.SpanAdd, otelAttrs(otel.AttributeSecurityID, in.SecurityID)...)
	defer span.End()

	if verr := Validate(in); verr != nil {
		c.reject(ctx, opAdd, verr)
		return verr
	}

	slot, _ := DecodeOrderID(in.OrderID)
	logger := log.With().Str("op", opAdd).Str("order_id", in.OrderID).Str("security_id", in.SecurityID).Logger()

	if c.backend.Has(slot) {
		logger.Debug().Msg("duplicate order id, ignoring")
		return nil
	}

	order := NewOrder(in.OrderID, in.SecurityID, in.Side, in.Quantity, in.User, in.Company)
	c.backend.AddOrder(order, slot)
	logger.Debug().Msg("order added")
	return nil
}

// Cancel decodes orderId and, if the slot is alive, removes it from the
// backend. An absent slot is a silent no-op; a malformed id is an
// invalid-argument error.
func (c *OrderCache) Cancel(ctx context.Context, orderID string) error {
	defer c.record(ctx, opCancel, time.Now())

	ctx, span := otel.StartSpan(ctx, otel.SpanCancel, otelAttrs(otel.AttributeOrderID, orderID)...)
	defer span.End()

	if verr := ValidateCancelID(orderID); verr != nil {
		c.reject(ctx, opCancel, verr)
		return verr
	}

	slot, _ := DecodeOrderID(orderID)
	if !c.backend.Has(slot) {
		return nil
	}
	c.backend.RemoveOrder(slot)
	log.Debug().Str("op", opCancel).Str("order_id", orderID).Msg("order cancelled")
	return nil
}

// CancelForUser cancels every order currently referenced by user's
// index bucket, iterating a defensive copy so RemoveOrder's own bucket
// mutation cannot invalidate the loop (spec.md section 5). An unknown
// user is a silent no-op.
func (c *OrderCache) CancelForUser(ctx context.Context, user string) {
	defer c.record(ctx, opCancelForUser, time.Now())

	_, span := otel.StartSpan(ctx, otel.SpanCancelForUser, otelAttrs(otel.AttributeUser, user)...)
	defer span.End()

	for _, slot := range c.backend.UserSlots(user) {
		if c.backend.Has(slot) {
			c.backend.RemoveOrder(slot)
		}
	}
	log.Debug().Str("op", opCancelForUser).Str("user", user).Msg("cancelled orders for user")
}

// CancelForSecurityWithMinQty cancels every live order on securityId
// whose quantity is at least minQty, iterating a defensive copy of the
// security's bucket. minQty == 0 is a no-op (spec.md section 4.6: zero
// would otherwise cancel everything).
func (c *OrderCache) CancelForSecurityWithMinQty(ctx context.Context, securityID string, minQty uint32) {
	defer c.record(ctx, opCancelForSecurityMinQty, time.Now())

	_, span := otel.StartSpan(ctx, otel.SpanCancelForSecurityMinQty,
		otelAttrs(otel.AttributeSecurityID, securityID)...)
	defer span.End()

	if minQty == 0 {
		return
	}

	for _, slot := range c.backend.SecuritySlots(securityID) {
		order, ok := c.backend.GetOrder(slot)
		if !ok {
			continue
		}
		if order.Quantity() >= minQty {
			c.backend.RemoveOrder(slot)
		}
	}
	log.Debug().Str("op", opCancelForSecurityMinQty).Str("security_id", securityID).
		Uint32("min_qty", minQty).Msg("cancelled orders for security")
}

// MatchingSize returns the O(1) matching size for securityID, 0 if the
// security is unknown.
func (c *OrderCache) MatchingSize(ctx context.Context, securityID string) uint32 {
	defer c.record(ctx, opMatchingSize, time.Now())

	_, span := otel.StartSpan(ctx, otel.SpanMatchingSize, otelAttrs(otel.AttributeSecurityID, securityID)...)
	defer span.End()

	return c.backend.MatchingSize(securityID)
}

// AllOrders returns a copy of every live order in unspecified order.
func (c *OrderCache) AllOrders(ctx context.Context) []Order {
	defer c.record(ctx, opAllOrders, time.Now())

	_, span := otel.StartSpan(ctx, otel.SpanAllOrders)
	defer span.End()

	return c.backend.AllOrders()
}

// LatencyStats exposes the recorded percentile snapshot for operation,
// for the Dump debug printer.
func (c *OrderCache) LatencyStats(operation string) metrics.Stats {
	return c.latency.Stats(operation)
}

func (c *OrderCache) record(ctx context.Context, operation string, start time.Time) {
	c.latency.Record(operation, time.Since(start))
	c.metrics.RecordOperation(ctx, operation)
}

func (c *OrderCache) reject(ctx context.Context, operation string, verr *ValidationError) {
	c.metrics.RecordRejection(ctx, operation, verr.Kind.String())
	log.Warn().Str("op", operation).Str("kind", verr.Kind.String()).Str("reason", verr.Reason).
		Msg("rejected invalid input")
}
