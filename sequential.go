package concurrentset

// SequentialSet is the unsynchronized baseline variant. It performs no
// locking whatsoever and is safe only under single-goroutine use; it exists
// as a reference oracle that the concurrent variants are tested against.
type SequentialSet[K comparable] struct {
	table     *Table[K]
	elemCount int
}

// NewSequentialSet constructs a SequentialSet with the given strictly
// positive initial bucket count.
func NewSequentialSet[K comparable](initialCapacity int) *SequentialSet[K] {
	if initialCapacity <= 0 {
		panic("concurrentset: initial capacity must be positive")
	}

	return &SequentialSet[K]{
		table: newTable[K](initialCapacity, MakeDefaultHashFunc[K]()),
	}
}

// Add inserts k, returning true iff k was previously absent.
func (s *SequentialSet[K]) Add(k K) bool {
	idx := s.table.locate(k)
	if s.table.bucketContains(idx, k) {
		return false
	}

	s.table.bucketInsert(idx, k)
	s.elemCount++

	if ShouldResize(s.elemCount, s.table.bucketCount()) {
		s.table = s.table.rehashTo(2 * s.table.bucketCount())
	}

	return true
}

// Remove deletes k, returning true iff k was previously present.
func (s *SequentialSet[K]) Remove(k K) bool {
	idx := s.table.locate(k)
	if !s.table.bucketRemove(idx, k) {
		return false
	}

	invariant(s.elemCount > 0, "elem_count underflow on Remove")
	s.elemCount--

	return true
}

// Contains reports whether k is currently present.
func (s *SequentialSet[K]) Contains(k K) bool {
	return s.table.bucketContains(s.table.locate(k), k)
}

// Size returns the current element count.
func (s *SequentialSet[K]) Size() int {
	return s.elemCount
}

// BucketCount returns the current table length, for diagnostics only.
func (s *SequentialSet[K]) BucketCount() int {
	return s.table.bucketCount()
}

var (
	_ Set[int]    = (*SequentialSet[int])(nil)
	_ inspectable = (*SequentialSet[int])(nil)
)
