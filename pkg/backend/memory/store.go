// Package memory implements the in-memory backend for the order cache:
// the primary slab store, the per-user/per-security secondary indices,
// and the per-security aggregate snapshot engine (spec.md sections 4.2,
// 4.3, 4.4).
package memory

import "github.com/erain9/ordercache/pkg/core"

// PrimaryStore is a dense slot array keyed by the numeric tail of an
// order id (spec.md section 4.2). It supports O(1) insert/lookup/erase
// with stable indices while an order is live, and O(live) enumeration.
//
// Freed slots retain their backing memory and may be reused if the same
// id is later re-added; the presence bit, not the stored value, is what
// makes a slot "alive" (spec.md section 4.2, Edge cases).
type PrimaryStore struct {
	orders      []core.Order
	present     []bool
	posInAlive  []int
	aliveSlots  []uint64
}

// NewPrimaryStore creates an empty PrimaryStore.
func NewPrimaryStore() *PrimaryStore {
	return &PrimaryStore{}
}

// Has reports whether slot currently holds a live order.
func (s *PrimaryStore) Has(slot uint64) bool {
	return slot < uint64(len(s.present)) && s.present[slot]
}

// Get returns the order at slot. The second return is false if the slot
// is not alive; callers always gate on Has first per spec.md section 4.2.
func (s *PrimaryStore) Get(slot uint64) (core.Order, bool) {
	if !s.Has(slot) {
		return core.Order{}, false
	}
	return s.orders[slot], true
}

// Insert stores order at slot, growing backing storage if needed.
// Precondition: Has(slot) is false; violating it panics, since it would
// silently corrupt the alive-index list otherwise (spec.md section 4.2).
func (s *PrimaryStore) Insert(order core.Order, slot uint64) {
	s.growTo(slot)
	if s.present[slot] {
		panic("memory: Insert called on an already-alive slot")
	}

	s.orders[slot] = order
	s.present[slot] = true
	s.aliveSlots = append(s.aliveSlots, slot)
	s.posInAlive[slot] = len(s.aliveSlots) - 1
}

// Erase marks slot not alive and removes it from the alive-index list in
// O(1) by swapping with the last alive entry. Precondition: Has(slot) is
// true; violating it panics.
func (s *PrimaryStore) Erase(slot uint64) {
	if !s.Has(slot) {
		panic("memory: Erase called on a slot that is not alive")
	}

	pos := s.posInAlive[slot]
	lastPos := len(s.aliveSlots) - 1
	lastSlot := s.aliveSlots[lastPos]

	s.aliveSlots[pos] = lastSlot
	s.posInAlive[lastSlot] = pos
	s.aliveSlots = s.aliveSlots[:lastPos]

	s.present[slot] = false
	s.posInAlive[slot] = -1
}

// Enumerate copies out all live orders. Order is unspecified but stable
// for a given sequence of operations on this instance.
func (s *PrimaryStore) Enumerate() []core.Order {
	out := make([]core.Order, 0, len(s.aliveSlots))
	for _, slot := range s.aliveSlots {
		out = append(out, s.orders[slot])
	}
	return out
}

// Len returns the number of currently live orders.
func (s *PrimaryStore) Len() int {
	return len(s.aliveSlots)
}

func (s *PrimaryStore) growTo(slot uint64) {
	if slot < uint64(len(s.present)) {
		return
	}

	newLen := slot + 1
	for uint64(len(s.orders)) < newLen {
		s.orders = append(s.orders, core.Order{})
		s.present = append(s.present, false)
		s.posInAlive = append(s.posInAlive, -1)
	}
}
