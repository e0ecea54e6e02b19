package concurrentset

import (
	"sync"
	"sync/atomic"
)

// RefinableSet keeps one lock per bucket, growing the lock array in step
// with the table so lock granularity never lags behind bucket granularity.
// A reader/writer resize gate externalizes the resize barrier: per-bucket
// locks serialize bucket work, and the gate serializes lock-array
// replacement against all bucket work. See acquire/release/resize below for
// the protocol; gate, table and locks are all only ever mutated while the
// gate's exclusive lease is held, which gives the Go race detector (and a
// reader) a well-formed happens-before edge for every access.
type RefinableSet[K comparable] struct {
	gate sync.RWMutex

	table *Table[K]
	locks []sync.Mutex

	bucketCount atomic.Int64
	elemCount   atomic.Int64

	hashFunc HashFunc[K]
}

// NewRefinableSet constructs a RefinableSet with the given strictly positive
// initial bucket (and lock) count.
func NewRefinableSet[K comparable](initialCapacity int) *RefinableSet[K] {
	if initialCapacity <= 0 {
		panic("concurrentset: initial capacity must be positive")
	}

	hashFunc := MakeDefaultHashFunc[K]()
	s := &RefinableSet[K]{
		table:    newTable[K](initialCapacity, hashFunc),
		locks:    make([]sync.Mutex, initialCapacity),
		hashFunc: hashFunc,
	}
	s.bucketCount.Store(int64(initialCapacity))

	return s
}

// acquire takes the shared resize lease and locks the per-bucket lock for k,
// returning the bucket index computed under that lease. bucketCount cannot
// change while the lease is held (R3), so the index recomputation at release
// would yield the same value and is skipped.
func (s *RefinableSet[K]) acquire(k K) int {
	s.gate.RLock()
	idx := int(s.hashFunc(k) % uint64(s.bucketCount.Load()))
	s.locks[idx].Lock()
	return idx
}

// release unwinds acquire: unlock the bucket lock, then drop the shared
// lease, in that order.
func (s *RefinableSet[K]) release(idx int) {
	s.locks[idx].Unlock()
	s.gate.RUnlock()
}

// Add inserts k, returning true iff k was previously absent.
func (s *RefinableSet[K]) Add(k K) bool {
	idx := s.acquire(k)

	inserted := false
	if !s.table.bucketContains(idx, k) {
		s.table.bucketInsert(idx, k)
		s.elemCount.Add(1)
		inserted = true
	}
	s.release(idx)

	// Policy is re-evaluated outside the critical section to keep the
	// shared lease short; a spurious call here exits resize at step 3.
	if inserted && ShouldResize(int(s.elemCount.Load()), int(s.bucketCount.Load())) {
		s.resize()
	}

	return inserted
}

// Remove deletes k, returning true iff k was previously present.
func (s *RefinableSet[K]) Remove(k K) bool {
	idx := s.acquire(k)
	defer s.release(idx)

	if !s.table.bucketRemove(idx, k) {
		return false
	}

	invariant(s.elemCount.Load() > 0, "elem_count underflow on Remove")
	s.elemCount.Add(-1)

	return true
}

// Contains reports whether k is currently present.
func (s *RefinableSet[K]) Contains(k K) bool {
	idx := s.acquire(k)
	defer s.release(idx)

	return s.table.bucketContains(idx, k)
}

// Size returns the current element count.
func (s *RefinableSet[K]) Size() int {
	return int(s.elemCount.Load())
}

// BucketCount returns the current table length, for diagnostics only.
func (s *RefinableSet[K]) BucketCount() int {
	return int(s.bucketCount.Load())
}

// resize takes the exclusive gate lease (blocking until every shared lease
// holder has exited and none can enter), quiesces the current lock array,
// then installs a table and lock array twice the size — all while still
// holding the exclusive lease, so no reader observes a partial swap.
func (s *RefinableSet[K]) resize() {
	oldCount := s.bucketCount.Load() // best-effort, lock-free snapshot

	s.gate.Lock()
	defer s.gate.Unlock()

	if s.bucketCount.Load() != oldCount {
		// Another goroutine already resized; idempotent no-op.
		return
	}

	s.quiesce()

	newCount := oldCount * 2
	s.table = s.table.rehashTo(int(newCount))
	s.locks = make([]sync.Mutex, newCount)
	s.bucketCount.Store(newCount)
}

// quiesce locks then immediately unlocks every bucket lock. The exclusive
// gate lease already guarantees no new per-key operation can start, but this
// additionally guarantees that no goroutine which acquired a bucket lock via
// a path outside the gate's discipline is still in flight.
func (s *RefinableSet[K]) quiesce() {
	for i := range s.locks {
		s.locks[i].Lock()
		s.locks[i].Unlock()
	}
}

var (
	_ Set[int]    = (*RefinableSet[int])(nil)
	_ inspectable = (*RefinableSet[int])(nil)
)
