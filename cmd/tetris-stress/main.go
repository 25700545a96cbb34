package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/calmtris/tetris"
)

type options struct {
	duration time.Duration
	games    int
	seed     uint64
	width    int
	height   int
	bag      bool
	fps      int
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.games, "games", 0, "Stop after this many finished games. Zero means no limit.")
	flag.Uint64Var(&opts.seed, "seed", 1, "The randomizer seed.")
	flag.IntVar(&opts.width, "width", tetris.DefaultWidth, "The board width in cells.")
	flag.IntVar(&opts.height, "height", tetris.DefaultHeight, "The board height in cells.")
	flag.BoolVar(&opts.bag, "bag", false, "Deal pieces from a shuffled bag of seven.")
	flag.IntVar(&opts.fps, "fps", 60, "Simulated frames per second of game time.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting tetris stress test...")

	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	report, err := run(ctx, opts)
	if err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// run lets the bot play seeded games until ctx is done or enough games have
// finished.
func run(ctx context.Context, opts options) (*Report, error) {
	if opts.fps < 1 {
		return nil, fmt.Errorf("fps must be at least 1, got %d", opts.fps)
	}

	var randomizer tetris.Randomizer = tetris.NewUniformRandomizer(opts.seed)
	if opts.bag {
		randomizer = tetris.NewBagRandomizer(opts.seed)
	}

	report := NewReport()
	report.Duration = opts.duration
	report.MaxGames = opts.games
	report.Seed = opts.seed
	report.Width = opts.width
	report.Height = opts.height
	report.Bag = opts.bag
	report.FPS = opts.fps

	var (
		game *tetris.Game
		last tetris.Snapshot
	)
	game = tetris.New(
		tetris.WithSize(opts.width, opts.height),
		tetris.WithRandomizer(randomizer),
		tetris.WithListener(tetris.ListenerFuncs{
			GameOver: func(stats tetris.Stats) {
				report.AddGame(stats, game.SpawnCounts())
			},
		}),
	)
	if err := game.Config().Validate(); err != nil {
		return nil, err
	}

	loop := tetris.NewLoop(game, tetris.WithFrameHook(func(s tetris.Snapshot) {
		last = s
	}))
	last = game.Snapshot()

	b := &bot{}
	dt := time.Second / time.Duration(opts.fps)

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if opts.games > 0 && len(report.Games) >= opts.games {
				break Loop
			}

			if k := b.next(last); k != tetris.KeyNone {
				loop.Press(k)
				loop.Release(k)
			}

			frameStart := time.Now()
			loop.Once(dt)
			report.FrameTime.Add(time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	stats := loop.Shutdown()
	report.TotalFrames = stats.Frames
	report.DroppedInputs = stats.DroppedInputs
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	return report, nil
}
