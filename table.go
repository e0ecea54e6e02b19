package concurrentset

// Table is a pure, unsynchronized array of bucket chains. Callers
// (the variants in this package) are responsible for all locking; Table
// itself never blocks and never retains a reference to anything beyond its
// own buckets.
type Table[K comparable] struct {
	buckets  [][]K
	hashFunc HashFunc[K]
}

// newTable allocates a table of bucketCount empty buckets.
func newTable[K comparable](bucketCount int, hashFunc HashFunc[K]) *Table[K] {
	return &Table[K]{
		buckets:  make([][]K, bucketCount),
		hashFunc: hashFunc,
	}
}

// bucketCount returns the current number of buckets.
func (t *Table[K]) bucketCount() int {
	return len(t.buckets)
}

// locate returns the index of the bucket that k belongs to.
func (t *Table[K]) locate(k K) int {
	return int(t.hashFunc(k) % uint64(len(t.buckets)))
}

// bucketContains performs a linear scan of bucket i for k.
func (t *Table[K]) bucketContains(i int, k K) bool {
	for _, existing := range t.buckets[i] {
		if existing == k {
			return true
		}
	}
	return false
}

// bucketInsert appends k to bucket i. The caller must have already checked
// that k is absent from the bucket.
func (t *Table[K]) bucketInsert(i int, k K) {
	t.buckets[i] = append(t.buckets[i], k)
}

// bucketRemove removes the first (and, by invariant, only) occurrence of k
// from bucket i, reporting whether it was found.
func (t *Table[K]) bucketRemove(i int, k K) bool {
	bucket := t.buckets[i]
	for j, existing := range bucket {
		if existing == k {
			t.buckets[i] = append(bucket[:j], bucket[j+1:]...)
			return true
		}
	}
	return false
}

// rehashTo allocates a fresh table of newCount buckets and redistributes
// every key from t into it by hash(k) mod newCount. It does not mutate t.
func (t *Table[K]) rehashTo(newCount int) *Table[K] {
	fresh := newTable[K](newCount, t.hashFunc)

	for _, bucket := range t.buckets {
		for _, k := range bucket {
			idx := fresh.locate(k)
			fresh.bucketInsert(idx, k)
		}
	}

	return fresh
}

// ShouldResize reports whether the load factor policy fires: the table
// resizes once elemCount/bucketCount strictly exceeds 4 (integer division).
func ShouldResize(elemCount, bucketCount int) bool {
	return elemCount/bucketCount > 4
}
