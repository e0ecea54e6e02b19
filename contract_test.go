package concurrentset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// variantCtors builds a fresh instance of every variant under test, keyed by
// name, so the algebraic properties in this file run once per variant.
func variantCtors() map[string]func(int) Set[int] {
	return map[string]func(int) Set[int]{
		"sequential": func(cap int) Set[int] { return NewSequentialSet[int](cap) },
		"coarse":     func(cap int) Set[int] { return NewCoarseSet[int](cap) },
		"striped":    func(cap int) Set[int] { return NewStripedSet[int](cap) },
		"refinable":  func(cap int) Set[int] { return NewRefinableSet[int](cap) },
	}
}

// TestProperty_AddContainsAgree checks: Add(k) returns true iff Contains(k)
// was false immediately prior, under exclusion (single-goroutine use, so
// "under exclusion" is automatic here).
func TestProperty_AddContainsAgree(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)

			for _, k := range []int{1, 2, 1, 3, 2} {
				wasPresent := s.Contains(k)
				added := s.Add(k)
				assert.Equal(t, !wasPresent, added)
			}
		})
	}
}

// TestProperty_RemoveContainsAgree checks: Remove(k) returns true iff
// Contains(k) was true immediately prior.
func TestProperty_RemoveContainsAgree(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)
			s.Add(1)

			for _, k := range []int{1, 1, 2} {
				wasPresent := s.Contains(k)
				removed := s.Remove(k)
				assert.Equal(t, wasPresent, removed)
			}
		})
	}
}

// TestProperty_Idempotence checks: two consecutive Adds (or Removes) leave
// the set identical to one.
func TestProperty_Idempotence(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)

			require.True(t, s.Add(7))
			require.False(t, s.Add(7))
			require.Equal(t, 1, s.Size())
			require.True(t, s.Contains(7))

			require.True(t, s.Remove(7))
			require.False(t, s.Remove(7))
			require.Equal(t, 0, s.Size())
			require.False(t, s.Contains(7))
		})
	}
}

// TestProperty_RoundTrip checks: after Add(k); Remove(k), Contains(k) is
// false and Size is unchanged.
func TestProperty_RoundTrip(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)
			s.Add(1)
			s.Add(2)
			before := s.Size()

			s.Add(99)
			s.Remove(99)

			require.Equal(t, before, s.Size())
			require.False(t, s.Contains(99))
		})
	}
}

// TestProperty_Cardinality checks: at every quiescent point, Size equals the
// number of distinct keys inserted-and-not-since-removed.
func TestProperty_Cardinality(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)
			present := make(map[int]struct{})

			ops := []struct {
				add bool
				k   int
			}{
				{true, 1}, {true, 2}, {true, 3}, {false, 2},
				{true, 4}, {false, 1}, {true, 1}, {false, 5},
			}

			for _, op := range ops {
				if op.add {
					s.Add(op.k)
					present[op.k] = struct{}{}
				} else {
					s.Remove(op.k)
					delete(present, op.k)
				}
				require.Equal(t, len(present), s.Size())
			}
		})
	}
}

// TestProperty_ResizeTransparency checks: for a policy-triggering trace, all
// keys present before the resize remain present after, and no extras appear.
func TestProperty_ResizeTransparency(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(2)

			const n = 300
			for i := 0; i < n; i++ {
				require.True(t, s.Add(i))
			}

			require.Equal(t, n, s.Size())
			for i := 0; i < n; i++ {
				require.True(t, s.Contains(i), "key %d missing after resize", i)
			}
			for i := n; i < n+50; i++ {
				require.False(t, s.Contains(i), "extraneous key %d present after resize", i)
			}
		})
	}
}

// TestProperty_S1 implements the literal S1 scenario against every variant.
func TestProperty_S1(t *testing.T) {
	for name, ctor := range variantCtors() {
		t.Run(name, func(t *testing.T) {
			s := ctor(4)

			require.True(t, s.Add(1))
			require.False(t, s.Add(1))
			require.True(t, s.Remove(1))
			require.False(t, s.Contains(1))
			require.Equal(t, 0, s.Size())
		})
	}
}

// TestProperty_NoLossConcurrency implements property 7: T goroutines each
// Add a genuinely disjoint key range, then all join; Size must equal the sum
// of the range sizes and every key from every range must be present.
func TestProperty_NoLossConcurrency(t *testing.T) {
	for name, ctor := range map[string]func(int) Set[int]{
		"coarse":    func(cap int) Set[int] { return NewCoarseSet[int](cap) },
		"striped":   func(cap int) Set[int] { return NewStripedSet[int](cap) },
		"refinable": func(cap int) Set[int] { return NewRefinableSet[int](cap) },
	} {
		t.Run(name, func(t *testing.T) {
			const numGoroutines = 8
			const rangeSize = 137

			s := ctor(4)

			var wg sync.WaitGroup
			for g := 0; g < numGoroutines; g++ {
				g := g
				wg.Add(1)
				go func() {
					defer wg.Done()
					lo := g * rangeSize
					hi := lo + rangeSize
					for v := lo; v < hi; v++ {
						s.Add(v)
					}
				}()
			}
			wg.Wait()

			require.Equal(t, numGoroutines*rangeSize, s.Size())
			for v := 0; v < numGoroutines*rangeSize; v++ {
				require.True(t, s.Contains(v), "key %d missing", v)
			}
		})
	}
}
