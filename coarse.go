package concurrentset

import "sync"

// CoarseSet guards the whole table and counters with a single mutex. It is
// the simplest correct concurrent variant: every operation acquires the
// mutex on entry and releases it on every exit path, including the resize it
// may trigger — the resize runs while the adding caller still holds the
// mutex, so no operation ever observes a partially rehashed table.
type CoarseSet[K comparable] struct {
	mu        sync.Mutex
	table     *Table[K]
	elemCount int
}

// NewCoarseSet constructs a CoarseSet with the given strictly positive
// initial bucket count.
func NewCoarseSet[K comparable](initialCapacity int) *CoarseSet[K] {
	if initialCapacity <= 0 {
		panic("concurrentset: initial capacity must be positive")
	}

	return &CoarseSet[K]{
		table: newTable[K](initialCapacity, MakeDefaultHashFunc[K]()),
	}
}

// Add inserts k, returning true iff k was previously absent.
func (s *CoarseSet[K]) Add(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

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
func (s *CoarseSet[K]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.table.locate(k)
	if !s.table.bucketRemove(idx, k) {
		return false
	}

	invariant(s.elemCount > 0, "elem_count underflow on Remove")
	s.elemCount--

	return true
}

// Contains reports whether k is currently present.
func (s *CoarseSet[K]) Contains(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.bucketContains(s.table.locate(k), k)
}

// Size returns the current element count.
func (s *CoarseSet[K]) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elemCount
}

// BucketCount returns the current table length, for diagnostics only.
func (s *CoarseSet[K]) BucketCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.bucketCount()
}

var (
	_ Set[int]    = (*CoarseSet[int])(nil)
	_ inspectable = (*CoarseSet[int])(nil)
)
