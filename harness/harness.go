// Package harness drives the concurrency benchmark and correctness check
// used by the demo programs: T workers each hammer an overlapping window of
// a shared set, then the harness checks that the resulting size and content
// match what the workload should have produced.
package harness

import (
	"fmt"
	"time"

	"github.com/homier/concurrentset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Config describes a single benchmark run.
type Config struct {
	NumThreads      int
	InitialCapacity int
	ChunkSize       int
}

// Result reports what a successful run produced.
type Result struct {
	ExpectedSize int
	Elapsed      time.Duration
}

// Mismatch reports that a run's final size or content did not match what
// the workload should have produced.
type Mismatch struct {
	Reason string
}

func (m *Mismatch) Error() string {
	return m.Reason
}

var opsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "concurrentset_harness_ops_total",
		Help: "Number of set operations issued by harness workers, by operation.",
	},
	[]string{"op"},
)

func init() {
	prometheus.MustRegister(opsTotal)
}

// workerBody is worker id's share of the §4.8 workload. Worker id owns the
// half-open window [id*chunkSize, id*chunkSize+2*chunkSize) — adjacent
// workers' windows deliberately overlap by chunkSize, which is what makes
// the union over every worker equal exactly chunkSize*(numThreads+1)
// distinct values.
func workerBody(set concurrentset.Set[int], id, chunkSize int) {
	lo := id * chunkSize
	hi := lo + 2*chunkSize

	for v := lo; v < hi; v++ {
		set.Add(v)
		opsTotal.WithLabelValues("add").Inc()
	}

	for pass := 0; pass < 20; pass++ {
		for v := lo; v < hi; v++ {
			present := set.Contains(v)
			opsTotal.WithLabelValues("contains").Inc()

			if present && v%20 == 0 {
				set.Remove(v)
				opsTotal.WithLabelValues("remove").Inc()
			}
		}
	}

	for v := lo; v < hi; v++ {
		set.Add(v)
		opsTotal.WithLabelValues("add").Inc()
	}
}

// Run spawns cfg.NumThreads workers against set, waits for all of them to
// join, then validates the aggregate outcome against the §4.8 contract.
func Run(set concurrentset.Set[int], cfg Config, log zerolog.Logger) (Result, error) {
	var g errgroup.Group

	start := time.Now()
	for id := 0; id < cfg.NumThreads; id++ {
		id := id
		g.Go(func() error {
			workerBody(set, id, cfg.ChunkSize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	expectedSize := cfg.ChunkSize * (cfg.NumThreads + 1)
	actualSize := set.Size()
	if actualSize != expectedSize {
		err := &Mismatch{Reason: fmt.Sprintf(
			"size %d does not match expected size %d", actualSize, expectedSize,
		)}
		log.Error().Err(err).Msg("harness failed")
		return Result{}, err
	}

	for v := 0; v < expectedSize; v++ {
		if !set.Contains(v) {
			err := &Mismatch{Reason: fmt.Sprintf("expected value %d not found", v)}
			log.Error().Err(err).Msg("harness failed")
			return Result{}, err
		}
	}

	log.Info().
		Dur("elapsed", elapsed).
		Int("size", actualSize).
		Int("num_threads", cfg.NumThreads).
		Int("chunk_size", cfg.ChunkSize).
		Msg("harness succeeded")

	return Result{ExpectedSize: expectedSize, Elapsed: elapsed}, nil
}
