// Command tetrad-soak plays random commands against real engines for a fixed
// time and prints a timing and memory report.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tetrad/display"
	"github.com/plus3/tetrad/engine"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "tetrad-soak"
	app.Usage = "headless soak test of the game engine"
	app.Flags = []cli.Flag{
		cli.DurationFlag{Name: "duration", Value: 10 * time.Second, Usage: "total run time"},
		cli.Uint64Flag{Name: "seed", Value: 1, Usage: "seed for shapes and commands"},
		cli.IntFlag{Name: "commands-per-tick", Value: 3, Usage: "random commands issued between ticks"},
		cli.BoolFlag{Name: "gc-pause-metrics", Usage: "include GC pause totals in the report"},
		cli.BoolFlag{Name: "verbose", Usage: "log engine events at debug level"},
	}
	app.Action = func(c *cli.Context) error {
		log := logrus.New()
		log.SetOutput(os.Stderr)
		if c.Bool("verbose") {
			log.SetLevel(logrus.DebugLevel)
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.Duration("duration"))
		defer cancel()

		log.Infof("soaking for %s", c.Duration("duration"))
		report, err := soak(ctx, Options{
			Seed:            c.Uint64("seed"),
			CommandsPerTick: c.Int("commands-per-tick"),
			GCPauseMetrics:  c.Bool("gc-pause-metrics"),
		}, log)
		if err != nil {
			return err
		}

		fmt.Println("\n--- Soak Report ---")
		if err := report.Generate(os.Stdout); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
		fmt.Println("--- End of Report ---")
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Options configures a soak run.
type Options struct {
	Seed            uint64
	CommandsPerTick int
	GCPauseMetrics  bool
}

// commands is what the soak picks from. Hold and the toggles are rarer so
// games last long enough to clear rows.
var commands = []struct {
	name   string
	weight int
	apply  func(display.Controller)
}{
	{"left", 6, display.Controller.MoveLeft},
	{"right", 6, display.Controller.MoveRight},
	{"down", 4, display.Controller.MoveDown},
	{"cw", 4, display.Controller.RotateCW},
	{"ccw", 2, display.Controller.RotateCCW},
	{"drop", 2, display.Controller.HardDrop},
	{"hold", 1, display.Controller.Hold},
	{"anims", 1, display.Controller.HaltAnims},
}

func pick(r *rand.Rand) func(display.Controller) {
	total := 0
	for _, c := range commands {
		total += c.weight
	}
	n := r.IntN(total)
	for _, c := range commands {
		if n < c.weight {
			return c.apply
		}
		n -= c.weight
	}
	return commands[0].apply
}

// soak runs games back to back until ctx is done.
func soak(ctx context.Context, opts Options, log logrus.FieldLogger) (*Report, error) {
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))
	report := &Report{
		Seed:            opts.Seed,
		CommandsPerTick: opts.CommandsPerTick,
		GCPauseMetrics:  opts.GCPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	seed := opts.Seed
	for ctx.Err() == nil {
		eng := engine.New(engine.Config{
			Seed:       seed,
			Logger:     log,
			Muted:      true,
			Animations: true,
		})
		err := playGame(ctx, eng, r, opts.CommandsPerTick, report)
		report.addGame(eng.Stats(), eng.Snapshot().Score)
		eng.Close()
		if err != nil {
			return nil, err
		}
		seed++
	}

	report.Duration = time.Since(start)
	report.TickTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}

func playGame(ctx context.Context, eng *engine.Engine, r *rand.Rand, perTick int, report *Report) error {
	score := 0
	for ctx.Err() == nil {
		for range perTick {
			pick(r)(eng)
			report.Commands++
		}

		start := time.Now()
		err := eng.Tick()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(start))

		snap := eng.Snapshot()
		if err := check(snap, score); err != nil {
			return fmt.Errorf("tick %d: %w", snap.Tick, err)
		}
		score = snap.Score

		if errors.Is(err, engine.ErrGameOver) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// check verifies the properties every snapshot must hold.
func check(s engine.Snapshot, prevScore int) error {
	if s.Score < prevScore {
		return fmt.Errorf("score went from %d to %d", prevScore, s.Score)
	}
	// Level is recomputed at the start of each tick, so it may trail the
	// score by one tick but never lead it.
	if s.Level < 1 || s.Level > engine.Level(s.Score) {
		return fmt.Errorf("level %d is ahead of score %d", s.Level, s.Score)
	}
	if s.WaitTime != engine.WaitTime(s.Level) {
		return fmt.Errorf("wait time %d does not match level %d", s.WaitTime, s.Level)
	}
	return nil
}
