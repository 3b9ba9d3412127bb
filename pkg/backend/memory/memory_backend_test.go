package memory

import (
	"testing"

	"github.com/erain9/ordercache/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendAddOrderCommitsToAllViews(t *testing.T) {
	b := NewMemoryBackend(false)
	o := core.NewOrder("OrdId1", "SEC", core.Buy, 100, "u1", "CompA")

	b.AddOrder(o, 1)

	assert.True(t, b.Has(1))
	got, ok := b.GetOrder(1)
	require.True(t, ok)
	assert.Equal(t, "OrdId1", got.ID())
	assert.ElementsMatch(t, []uint64{1}, b.UserSlots("u1"))
	assert.ElementsMatch(t, []uint64{1}, b.SecuritySlots("SEC"))
	assert.Equal(t, uint32(0), b.MatchingSize("SEC")) // one-sided, no counterparty
}

func TestMemoryBackendRemoveOrderClearsAllViews(t *testing.T) {
	b := NewMemoryBackend(false)
	o := core.NewOrder("OrdId1", "SEC", core.Buy, 100, "u1", "CompA")
	b.AddOrder(o, 1)

	removed := b.RemoveOrder(1)

	assert.Equal(t, "OrdId1", removed.ID())
	assert.False(t, b.Has(1))
	assert.Nil(t, b.UserSlots("u1"))
	assert.Nil(t, b.SecuritySlots("SEC"))
}

func TestMemoryBackendRemoveOrderDropsEmptySnapshotByDefault(t *testing.T) {
	b := NewMemoryBackend(false)
	o := core.NewOrder("OrdId1", "SEC", core.Buy, 100, "u1", "CompA")
	b.AddOrder(o, 1)
	b.RemoveOrder(1)

	assert.Nil(t, b.Snapshot("SEC"))
	assert.Equal(t, uint32(0), b.MatchingSize("SEC"))
}

func TestMemoryBackendRetainsEmptySnapshotWhenConfigured(t *testing.T) {
	b := NewMemoryBackend(true)
	o := core.NewOrder("OrdId1", "SEC", core.Buy, 100, "u1", "CompA")
	b.AddOrder(o, 1)
	b.RemoveOrder(1)

	snap := b.Snapshot("SEC")
	require.NotNil(t, snap)
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, uint32(0), b.MatchingSize("SEC"))
}

func TestMemoryBackendMatchingSizeUnknownSecurityIsZero(t *testing.T) {
	b := NewMemoryBackend(false)
	assert.Equal(t, uint32(0), b.MatchingSize("nobody-trades-this"))
}

func TestMemoryBackendAllOrdersReturnsLiveOnly(t *testing.T) {
	b := NewMemoryBackend(false)
	b.AddOrder(core.NewOrder("OrdId1", "SEC", core.Buy, 100, "u1", "CompA"), 1)
	b.AddOrder(core.NewOrder("OrdId2", "SEC", core.Sell, 200, "u2", "CompB"), 2)
	b.RemoveOrder(1)

	all := b.AllOrders()
	require.Len(t, all, 1)
	assert.Equal(t, "OrdId2", all[0].ID())
}

func TestMemoryBackendSecuritiesTracksLiveSet(t *testing.T) {
	b := NewMemoryBackend(false)
	assert.Empty(t, b.Securities())

	b.AddOrder(core.NewOrder("OrdId1", "SEC1", core.Buy, 100, "u1", "CompA"), 1)
	assert.ElementsMatch(t, []string{"SEC1"}, b.Securities())
}

func TestMemoryBackendCancelForUserScenario(t *testing.T) {
	// S4 in spec.md section 8: cancelling all of one user's orders on a
	// security must update the snapshot as if those orders never
	// existed for matchingSize purposes.
	b := NewMemoryBackend(false)
	b.AddOrder(core.NewOrder("OrdId1", "SEC", core.Buy, 1000, "u1", "CompA"), 1)
	b.AddOrder(core.NewOrder("OrdId2", "SEC", core.Buy, 100, "u2", "CompB"), 2)
	b.AddOrder(core.NewOrder("OrdId3", "SEC", core.Sell, 5100, "u3", "CompC"), 3)

	for _, slot := range b.UserSlots("u1") {
		b.RemoveOrder(slot)
	}

	snap := b.Snapshot("SEC")
	require.NotNil(t, snap)
	assert.Equal(t, uint64(100), snap.TotalBuy())
	assert.Equal(t, uint64(5100), snap.TotalSell())
}

func TestMemoryBackendVarSatisfiesCacheBackend(t *testing.T) {
	var _ core.CacheBackend = NewMemoryBackend(false)
}
