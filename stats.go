package concurrentset

// Stats summarizes the current shape of a set. It is a diagnostic snapshot,
// not part of the Set contract: nothing on the Add/Remove/Contains hot path
// depends on it, so taking one never affects linearizability.
type Stats struct {
	Size        int
	BucketCount int
	LoadFactor  float64
}

// Snapshot builds a Stats value from anything exposing Size and BucketCount.
// Every variant in this package satisfies inspectable.
func Snapshot(s inspectable) Stats {
	size := s.Size()
	buckets := s.BucketCount()

	var loadFactor float64
	if buckets > 0 {
		loadFactor = float64(size) / float64(buckets)
	}

	return Stats{
		Size:        size,
		BucketCount: buckets,
		LoadFactor:  loadFactor,
	}
}
