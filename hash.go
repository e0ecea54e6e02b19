package concurrentset

import "hash/maphash"

// HashFunc computes a deterministic, non-cryptographic hash for a key of
// type K. It must be total (defined for every value of K) and must not
// block, since variants call it while holding internal locks.
type HashFunc[K comparable] func(K) uint64

// MakeDefaultHashFunc returns a HashFunc seeded once, suitable as the default
// hash for a freshly constructed set. Two hash functions built by separate
// calls are not guaranteed to agree, which is fine: a HashFunc never outlives
// the set it was built for.
func MakeDefaultHashFunc[K comparable]() HashFunc[K] {
	seed := maphash.MakeSeed()

	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}
