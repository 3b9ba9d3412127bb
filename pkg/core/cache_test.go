package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal in-memory CacheBackend used to test the
// façade's sequencing (validate -> decode -> backend) independently of
// pkg/backend/memory, the way the teacher's OrderBook tests sometimes
// substitute a stub backend.
type fakeBackend struct {
	orders     map[uint64]Order
	userIdx    map[string][]uint64
	securityID map[string][]uint64
	sizes      map[string]uint32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		orders:     make(map[uint64]Order),
		userIdx:    make(map[string][]uint64),
		securityID: make(map[string][]uint64),
		sizes:      make(map[string]uint32),
	}
}

func (f *fakeBackend) Has(slot uint64) bool { _, ok := f.orders[slot]; return ok }
func (f *fakeBackend) GetOrder(slot uint64) (Order, bool) {
	o, ok := f.orders[slot]
	return o, ok
}
func (f *fakeBackend) AddOrder(o Order, slot uint64) {
	f.orders[slot] = o
	f.userIdx[o.User()] = append(f.userIdx[o.User()], slot)
	f.securityID[o.SecurityID()] = append(f.securityID[o.SecurityID()], slot)
}
func (f *fakeBackend) RemoveOrder(slot uint64) Order {
	o := f.orders[slot]
	delete(f.orders, slot)
	return o
}
func (f *fakeBackend) UserSlots(user string) []uint64 {
	out := make([]uint64, len(f.userIdx[user]))
	copy(out, f.userIdx[user])
	return out
}
func (f *fakeBackend) SecuritySlots(securityID string) []uint64 {
	out := make([]uint64, len(f.securityID[securityID]))
	copy(out, f.securityID[securityID])
	return out
}
func (f *fakeBackend) MatchingSize(securityID string) uint32 { return f.sizes[securityID] }
func (f *fakeBackend) AllOrders() []Order {
	out := make([]Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out
}

func input(id, sec string, side Side, qty uint32, user, company string) OrderInput {
	return OrderInput{OrderID: id, SecurityID: sec, Side: side, Quantity: qty, User: user, Company: company}
}

func TestOrderCacheAddRejectsInvalidInput(t *testing.T) {
	cache := NewOrderCache(newFakeBackend())
	err := cache.Add(context.Background(), input("", "SEC", Buy, 100, "u1", "CompA"))

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrEmptyOrderID, verr.Kind)
}

func TestOrderCacheAddDuplicateIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	in := input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")

	require.NoError(t, cache.Add(context.Background(), in))
	require.NoError(t, cache.Add(context.Background(), in))

	assert.Len(t, cache.AllOrders(context.Background()), 1)
}

func TestOrderCacheCancelOfAbsentIsNoOp(t *testing.T) {
	cache := NewOrderCache(newFakeBackend())
	assert.NoError(t, cache.Cancel(context.Background(), "OrdId1"))
}

func TestOrderCacheCancelMalformedIDIsError(t *testing.T) {
	cache := NewOrderCache(newFakeBackend())
	err := cache.Cancel(context.Background(), "not-an-id")
	require.Error(t, err)
}

func TestOrderCacheCancelForSecurityMinQtyZeroIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()
	require.NoError(t, cache.Add(ctx, input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")))

	cache.CancelForSecurityWithMinQty(ctx, "SEC", 0)

	assert.Len(t, cache.AllOrders(ctx), 1)
}

func TestOrderCacheCancelForSecurityMinQtyFiltersByQuantity(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()
	require.NoError(t, cache.Add(ctx, input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")))
	require.NoError(t, cache.Add(ctx, input("OrdId2", "SEC", Sell, 500, "u2", "CompB")))

	cache.CancelForSecurityWithMinQty(ctx, "SEC", 1000)

	remaining := cache.AllOrders(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "OrdId2", remaining[0].ID())
}

func TestOrderCacheCancelForUserRemovesOnlyThatUsersOrders(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()
	require.NoError(t, cache.Add(ctx, input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")))
	require.NoError(t, cache.Add(ctx, input("OrdId2", "SEC", Sell, 500, "u2", "CompB")))

	cache.CancelForUser(ctx, "u1")

	remaining := cache.AllOrders(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "OrdId2", remaining[0].ID())
}

func TestOrderCacheCancelForUserUnknownUserIsNoOp(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()
	require.NoError(t, cache.Add(ctx, input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")))

	cache.CancelForUser(ctx, "ghost")

	assert.Len(t, cache.AllOrders(ctx), 1)
}

func TestOrderCacheMatchingSizeUnknownSecurityIsZero(t *testing.T) {
	cache := NewOrderCache(newFakeBackend())
	assert.Equal(t, uint32(0), cache.MatchingSize(context.Background(), "nobody"))
}

func TestOrderCacheRoundTripAddCancelIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()

	before := cache.AllOrders(ctx)
	require.NoError(t, cache.Add(ctx, input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")))
	require.NoError(t, cache.Cancel(ctx, "OrdId1"))
	after := cache.AllOrders(ctx)

	assert.Equal(t, before, after)
}

// S6: duplicate add is a no-op, and cancelling once empties the cache.
func TestOrderCacheScenarioS6DuplicateAddThenSingleCancel(t *testing.T) {
	backend := newFakeBackend()
	cache := NewOrderCache(backend)
	ctx := context.Background()
	in := input("OrdId1", "SEC", Buy, 1000, "u1", "CompA")

	require.NoError(t, cache.Add(ctx, in))
	require.NoError(t, cache.Add(ctx, in))
	require.NoError(t, cache.Cancel(ctx, "OrdId1"))

	assert.Empty(t, cache.AllOrders(ctx))
}
