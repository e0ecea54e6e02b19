package concurrentset

import (
	"sync"
	"sync/atomic"
)

// StripedSet guards the table with a fixed-size array of mutexes. lockCount
// is fixed at construction; as the table grows, each lock comes to guard
// multiple buckets (bucket b is guarded by lock b mod lockCount).
type StripedSet[K comparable] struct {
	lockCount int
	locks     []sync.Mutex
	hashFunc  HashFunc[K]

	table       atomic.Pointer[Table[K]]
	bucketCount atomic.Int64
	elemCount   atomic.Int64
}

// NewStripedSet constructs a StripedSet with the given strictly positive
// initial bucket (and lock) count.
func NewStripedSet[K comparable](initialCapacity int) *StripedSet[K] {
	if initialCapacity <= 0 {
		panic("concurrentset: initial capacity must be positive")
	}

	s := &StripedSet[K]{
		lockCount: initialCapacity,
		locks:     make([]sync.Mutex, initialCapacity),
		hashFunc:  MakeDefaultHashFunc[K](),
	}
	s.table.Store(newTable[K](initialCapacity, s.hashFunc))
	s.bucketCount.Store(int64(initialCapacity))

	return s
}

// lockIndex maps k to its (fixed-width) lock, independent of bucketCount.
func (s *StripedSet[K]) lockIndex(k K) int {
	return int(s.hashFunc(k) % uint64(s.lockCount))
}

// Add inserts k, returning true iff k was previously absent.
func (s *StripedSet[K]) Add(k K) bool {
	lockIdx := s.lockIndex(k)

	s.locks[lockIdx].Lock()
	t := s.table.Load()
	idx := t.locate(k)
	if t.bucketContains(idx, k) {
		s.locks[lockIdx].Unlock()
		return false
	}
	t.bucketInsert(idx, k)
	s.elemCount.Add(1)
	s.locks[lockIdx].Unlock()

	if ShouldResize(int(s.elemCount.Load()), int(s.bucketCount.Load())) {
		s.resize()
	}

	return true
}

// Remove deletes k, returning true iff k was previously present.
func (s *StripedSet[K]) Remove(k K) bool {
	lockIdx := s.lockIndex(k)

	s.locks[lockIdx].Lock()
	defer s.locks[lockIdx].Unlock()

	t := s.table.Load()
	idx := t.locate(k)
	if !t.bucketRemove(idx, k) {
		return false
	}

	invariant(s.elemCount.Load() > 0, "elem_count underflow on Remove")
	s.elemCount.Add(-1)

	return true
}

// Contains reports whether k is currently present.
func (s *StripedSet[K]) Contains(k K) bool {
	lockIdx := s.lockIndex(k)

	s.locks[lockIdx].Lock()
	defer s.locks[lockIdx].Unlock()

	t := s.table.Load()
	return t.bucketContains(t.locate(k), k)
}

// Size returns the current element count.
func (s *StripedSet[K]) Size() int {
	return int(s.elemCount.Load())
}

// BucketCount returns the current table length, for diagnostics only.
func (s *StripedSet[K]) BucketCount() int {
	return int(s.bucketCount.Load())
}

// resize acquires every lock in index order — a total order, which avoids
// deadlock against any concurrent resize attempt — then doubles the table.
// A resize observed to be redundant (another goroutine already won the race)
// is a harmless no-op.
func (s *StripedSet[K]) resize() {
	oldCount := s.bucketCount.Load()

	for i := range s.locks {
		s.locks[i].Lock()
	}
	defer func() {
		for i := range s.locks {
			s.locks[i].Unlock()
		}
	}()

	if s.bucketCount.Load() != oldCount {
		return
	}

	rehashed := s.table.Load().rehashTo(int(oldCount) * 2)
	s.table.Store(rehashed)
	s.bucketCount.Store(oldCount * 2)
}

var (
	_ Set[int]    = (*StripedSet[int])(nil)
	_ inspectable = (*StripedSet[int])(nil)
)
