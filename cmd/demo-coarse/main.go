// Command demo-coarse drives the §4.8 benchmark harness against CoarseSet.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/homier/concurrentset"
	"github.com/homier/concurrentset/harness"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:      "demo-coarse",
	Usage:     "Run the coarse-grained concurrent set benchmark.",
	ArgsUsage: "num_threads initial_capacity chunk_size",
	Action:    run,
}

func run(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return err
	}

	set := concurrentset.NewCoarseSet[int](cfg.InitialCapacity)

	result, err := harness.Run(set, cfg, log.Logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	log.Info().
		Dur("elapsed", result.Elapsed).
		Int("size", result.ExpectedSize).
		Msg("demo-coarse succeeded")
	return nil
}

func parseConfig(c *cli.Context) (harness.Config, error) {
	if c.NArg() != 3 {
		return harness.Config{}, cli.Exit(
			fmt.Sprintf("usage: %s num_threads initial_capacity chunk_size", c.App.Name), 1,
		)
	}

	numThreads, err1 := strconv.Atoi(c.Args().Get(0))
	initialCapacity, err2 := strconv.Atoi(c.Args().Get(1))
	chunkSize, err3 := strconv.Atoi(c.Args().Get(2))

	if err1 != nil || numThreads <= 0 {
		return harness.Config{}, cli.Exit("num_threads must be a positive integer", 1)
	}
	if err2 != nil || initialCapacity <= 0 {
		return harness.Config{}, cli.Exit("initial_capacity must be a positive integer", 1)
	}
	if err3 != nil || chunkSize <= 0 {
		return harness.Config{}, cli.Exit("chunk_size must be a positive integer", 1)
	}

	return harness.Config{
		NumThreads:      numThreads,
		InitialCapacity: initialCapacity,
		ChunkSize:       chunkSize,
	}, nil
}

func main() {
	log.Logger = log.Logger.Level(zerolog.InfoLevel)

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("demo-coarse failed")
	}
}
