package harness

import (
	"io"
	"testing"

	"github.com/homier/concurrentset"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func discardLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// TestRun_S3 implements the literal S3 end-to-end scenario against each
// concurrent variant: 8 threads, initial_capacity=4, chunk_size=100.
func TestRun_S3(t *testing.T) {
	variants := map[string]func(int) concurrentset.Set[int]{
		"coarse":    func(cap int) concurrentset.Set[int] { return concurrentset.NewCoarseSet[int](cap) },
		"striped":   func(cap int) concurrentset.Set[int] { return concurrentset.NewStripedSet[int](cap) },
		"refinable": func(cap int) concurrentset.Set[int] { return concurrentset.NewRefinableSet[int](cap) },
	}

	cfg := Config{NumThreads: 8, InitialCapacity: 4, ChunkSize: 100}

	for name, ctor := range variants {
		t.Run(name, func(t *testing.T) {
			set := ctor(cfg.InitialCapacity)

			result, err := Run(set, cfg, discardLogger())
			require.NoError(t, err)
			require.Equal(t, 900, result.ExpectedSize)
			require.Equal(t, 900, set.Size())

			for v := 0; v < 900; v++ {
				require.True(t, set.Contains(v), "value %d not found", v)
			}
		})
	}
}

// TestRun_S6 is the stress variant of S3 against RefinableSet: 16 threads.
// Run with `go test -race` to exercise the "no data race report" half of S6;
// the deadlock-freedom half is exercised simply by the test completing
// within the test timeout.
func TestRun_S6(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress scenario in short mode")
	}

	set := concurrentset.NewRefinableSet[int](4)
	cfg := Config{NumThreads: 16, InitialCapacity: 4, ChunkSize: 100}

	result, err := Run(set, cfg, discardLogger())
	require.NoError(t, err)
	require.Equal(t, 1700, result.ExpectedSize)
}

func TestRun_Mismatch(t *testing.T) {
	// A set that never grows past its tiny capacity but is asked to hold
	// far more keys than any bucket invariant would allow to be missed
	// cannot actually produce a mismatch here (resize keeps it correct);
	// instead we exercise the Mismatch type directly for its Error().
	err := &Mismatch{Reason: "size 1 does not match expected size 2"}
	require.EqualError(t, err, "size 1 does not match expected size 2")
}
