package memory

import "github.com/erain9/ordercache/pkg/core"

// MemoryBackend implements core.CacheBackend with in-memory storage: a
// PrimaryStore plus two BucketIndex instances (by user, by security) plus
// one SecuritySnapshot per security with any live order, kept in lockstep
// on every AddOrder/RemoveOrder, per spec.md sections 4.2-4.4.
type MemoryBackend struct {
	primary      *PrimaryStore
	byUser       *BucketIndex[string]
	bySecurity   *BucketIndex[string]
	snapshots    map[string]*SecuritySnapshot
	retainEmpty  bool
}

// NewMemoryBackend creates an empty MemoryBackend. retainEmptySnapshots
// controls the spec's open question on snapshot retention (spec.md
// section 9): when false (the default via NewMemoryBackend(false)), a
// security's snapshot entry is deleted once its last live order is
// removed; either setting is observably identical through MatchingSize
// and AllOrders.
func NewMemoryBackend(retainEmptySnapshots bool) *MemoryBackend {
	return &MemoryBackend{
		primary:     NewPrimaryStore(),
		byUser:      NewBucketIndex[string](),
		bySecurity:  NewBucketIndex[string](),
		snapshots:   make(map[string]*SecuritySnapshot),
		retainEmpty: retainEmptySnapshots,
	}
}

// Has reports whether slot currently holds a live order.
func (b *MemoryBackend) Has(slot uint64) bool {
	return b.primary.Has(slot)
}

// GetOrder returns the live order at slot, or ok == false.
func (b *MemoryBackend) GetOrder(slot uint64) (core.Order, bool) {
	return b.primary.Get(slot)
}

// AddOrder commits order to the primary store, both secondary indices,
// and folds it into its security's snapshot. Precondition: Has(slot) is
// false (checked by the caller, OrderCache.Add).
func (b *MemoryBackend) AddOrder(order core.Order, slot uint64) {
	b.primary.Insert(order, slot)
	b.byUser.AddRef(order.User(), slot)
	b.bySecurity.AddRef(order.SecurityID(), slot)

	snap, ok := b.snapshots[order.SecurityID()]
	if !ok {
		snap = NewSecuritySnapshot()
		b.snapshots[order.SecurityID()] = snap
	}
	snap.Add(order)
}

// RemoveOrder removes the order at slot from every view and returns it.
// Precondition: Has(slot) is true (checked by the caller).
func (b *MemoryBackend) RemoveOrder(slot uint64) core.Order {
	order, _ := b.primary.Get(slot)

	b.primary.Erase(slot)
	b.byUser.RemoveRef(order.User(), slot)
	b.bySecurity.RemoveRef(order.SecurityID(), slot)

	if snap, ok := b.snapshots[order.SecurityID()]; ok {
		snap.Remove(order)
		if !b.retainEmpty && snap.IsEmpty() {
			delete(b.snapshots, order.SecurityID())
		}
	}

	return order
}

// UserSlots returns a defensive copy of user's bucket.
func (b *MemoryBackend) UserSlots(user string) []uint64 {
	return b.byUser.Snapshot(user)
}

// SecuritySlots returns a defensive copy of securityID's bucket.
func (b *MemoryBackend) SecuritySlots(securityID string) []uint64 {
	return b.bySecurity.Snapshot(securityID)
}

// MatchingSize returns the O(1) matching size for securityID, or 0 if
// the security has no snapshot (never traded, or fully cancelled with
// retainEmpty false).
func (b *MemoryBackend) MatchingSize(securityID string) uint32 {
	snap, ok := b.snapshots[securityID]
	if !ok {
		return 0
	}
	return snap.MatchingSize()
}

// AllOrders returns a copy of all live orders in unspecified order.
func (b *MemoryBackend) AllOrders() []core.Order {
	return b.primary.Enumerate()
}

// Snapshot exposes the raw SecuritySnapshot for securityID, for callers
// (such as tests) that need more than the O(1) matching-size read. It
// returns nil if the security has no snapshot.
func (b *MemoryBackend) Snapshot(securityID string) *SecuritySnapshot {
	return b.snapshots[securityID]
}

// Securities returns the set of security ids that currently have a
// snapshot, in unspecified order.
func (b *MemoryBackend) Securities() []string {
	out := make([]string, 0, len(b.snapshots))
	for id := range b.snapshots {
		out = append(out, id)
	}
	return out
}

var _ core.CacheBackend = (*MemoryBackend)(nil)
