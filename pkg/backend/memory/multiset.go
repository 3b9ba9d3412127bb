package memory

import "container/heap"

// volumeEntry is one snapshot of a company's combined volume, pushed onto
// the heap. A pushed entry becomes stale the moment the company's live
// volume changes; Max lazily discards stale entries as it finds them.
type volumeEntry struct {
	volume  int64
	company string
}

// maxVolumeHeap is a max-heap over volumeEntry, the same
// Len/Less/Swap/Push/Pop shape as the price-level heaps in the retrieved
// order-book examples (container/heap's canonical usage).
type maxVolumeHeap []volumeEntry

func (h maxVolumeHeap) Len() int            { return len(h) }
func (h maxVolumeHeap) Less(i, j int) bool  { return h[i].volume > h[j].volume }
func (h maxVolumeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *maxVolumeHeap) Push(x interface{}) { *h = append(*h, x.(volumeEntry)) }
func (h *maxVolumeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// VolumeMultiset is the maxVolumes structure of spec.md section 4.4: an
// ordered multiset of per-company combined volumes on one security,
// supporting insert, removal of a specific company's entry, and reading
// the maximum, each in amortized O(log N) for N distinct live companies.
//
// A plain max-heap cannot support arbitrary removal (spec.md section 9),
// so entries are versioned against a ground-truth map instead of removed
// in place: Insert overwrites the company's current volume and pushes a
// new heap entry; Remove simply drops the company from the ground-truth
// map, leaving its heap entries to be discarded lazily by Max. A periodic
// compaction bounds the heap to O(N) so long histories of adds/removes on
// the same company don't leak unbounded stale entries.
type VolumeMultiset struct {
	heap    maxVolumeHeap
	current map[string]int64
}

// NewVolumeMultiset creates an empty VolumeMultiset.
func NewVolumeMultiset() *VolumeMultiset {
	return &VolumeMultiset{current: make(map[string]int64)}
}

// Insert sets company's combined volume to volume, replacing any prior
// value. volume must be > 0; a company reaching zero combined volume is
// removed via Remove instead, per spec.md section 4.4.
func (m *VolumeMultiset) Insert(company string, volume int64) {
	m.current[company] = volume
	heap.Push(&m.heap, volumeEntry{volume: volume, company: company})
	m.compactIfNeeded()
}

// Remove drops company from the multiset entirely.
func (m *VolumeMultiset) Remove(company string) {
	delete(m.current, company)
}

// Max returns the largest live combined volume, or 0 if the multiset is
// empty.
func (m *VolumeMultiset) Max() int64 {
	for len(m.heap) > 0 {
		top := m.heap[0]
		if live, ok := m.current[top.company]; ok && live == top.volume {
			return top.volume
		}
		heap.Pop(&m.heap)
	}
	return 0
}

// Len returns the number of companies currently tracked.
func (m *VolumeMultiset) Len() int {
	return len(m.current)
}

func (m *VolumeMultiset) compactIfNeeded() {
	if len(m.heap) <= 2*len(m.current)+16 {
		return
	}

	fresh := make(maxVolumeHeap, 0, len(m.current))
	for c, v := range m.current {
		fresh = append(fresh, volumeEntry{volume: v, company: c})
	}
	heap.Init(&fresh)
	m.heap = fresh
}
