// Command demo-sequential exercises SequentialSet with a single goroutine:
// it Adds [0, count), spot-checks the midpoint, Removes [0, count), and
// spot-checks again.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/homier/concurrentset"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

var app = &cli.App{
	Name:      "demo-sequential",
	Usage:     "Run the sequential set baseline over [0, count).",
	ArgsUsage: "initial_capacity count",
	Action:    run,
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.Exit(fmt.Sprintf("usage: %s initial_capacity count", c.App.Name), 1)
	}

	initialCapacity, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || initialCapacity <= 0 {
		return cli.Exit("initial_capacity must be a positive integer", 1)
	}
	count, err := strconv.Atoi(c.Args().Get(1))
	if err != nil || count < 0 {
		return cli.Exit("count must be a non-negative integer", 1)
	}

	s := concurrentset.NewSequentialSet[int](initialCapacity)

	for i := 0; i < count; i++ {
		s.Add(i)
	}

	mid := count / 2
	if got := s.Size(); got != count {
		return cli.Exit(fmt.Sprintf("size %d does not match expected size %d", got, count), 1)
	}
	if count > 0 && !s.Contains(mid) {
		return cli.Exit(fmt.Sprintf("expected value %d not found", mid), 1)
	}

	for i := 0; i < count; i++ {
		s.Remove(i)
	}

	if got := s.Size(); got != 0 {
		return cli.Exit(fmt.Sprintf("size %d does not match expected size 0", got), 1)
	}
	if count > 0 && s.Contains(mid) {
		return cli.Exit(fmt.Sprintf("value %d unexpectedly still present", mid), 1)
	}

	log.Info().Int("count", count).Msg("demo-sequential succeeded")
	return nil
}

func main() {
	log.Logger = log.Logger.Level(zerolog.InfoLevel)

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("demo-sequential failed")
	}
}
