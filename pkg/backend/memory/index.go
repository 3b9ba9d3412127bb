package memory

// BucketIndex is the shared secondary-index contract of spec.md section
// 4.3, parameterised over the key type: a mapping from key to an
// unordered sequence of alive slot indices. Both the per-user and the
// per-security index are instances of this generic type.
type BucketIndex[K comparable] struct {
	buckets map[K][]uint64
}

// NewBucketIndex creates an empty BucketIndex.
func NewBucketIndex[K comparable]() *BucketIndex[K] {
	return &BucketIndex[K]{buckets: make(map[K][]uint64)}
}

// AddRef appends slot to key's bucket, creating the bucket if absent.
func (b *BucketIndex[K]) AddRef(key K, slot uint64) {
	b.buckets[key] = append(b.buckets[key], slot)
}

// RemoveRef removes slot from key's bucket by linear scan and swap-pop.
// It is a silent no-op if the key or the slot within it is missing. A
// bucket that becomes empty is removed entirely so lookups on it read
// as absent, per spec.md section 4.3.
func (b *BucketIndex[K]) RemoveRef(key K, slot uint64) {
	bucket, ok := b.buckets[key]
	if !ok {
		return
	}

	for i, s := range bucket {
		if s != slot {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket = bucket[:last]
		if len(bucket) == 0 {
			delete(b.buckets, key)
		} else {
			b.buckets[key] = bucket
		}
		return
	}
}

// Snapshot returns a defensive copy of key's bucket, or nil if key is
// absent. Callers that need to iterate while mutating the same key
// (cancelForUser, cancelForSecurityWithMinQty) must use this rather than
// a live view, per spec.md section 5.
func (b *BucketIndex[K]) Snapshot(key K) []uint64 {
	bucket, ok := b.buckets[key]
	if !ok {
		return nil
	}
	out := make([]uint64, len(bucket))
	copy(out, bucket)
	return out
}

// Has reports whether key currently has any live references.
func (b *BucketIndex[K]) Has(key K) bool {
	_, ok := b.buckets[key]
	return ok
}
