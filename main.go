package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/evolve"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/sprite"
	"github.com/pthm-cable/flappy/telemetry"
	"github.com/pthm-cable/flappy/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and hall of fame")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config value, then time-based)")
	generations := flag.Int("generations", 0, "Generations to train (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Per-episode tick limit (0 = use config)")
	debug := flag.Bool("debug", false, "Log at debug level, including per-generation timings")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// CLI overrides
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	if *generations > 0 {
		cfg.Evolution.Generations = *generations
	}
	if *maxTicks > 0 {
		cfg.Simulation.MaxTicks = *maxTicks
	}
	if *seed != 0 {
		cfg.Evolution.Seed = *seed
	}
	if cfg.Evolution.Seed == 0 {
		cfg.Evolution.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, *headless)
	stop()
	if err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}
}

// run trains until the generation budget or fitness threshold is reached,
// the context is cancelled or the window is closed.
func run(ctx context.Context, cfg *config.Config, headless bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	// The snapshot carries the resolved seed, so the run can be replayed
	if err := out.WriteConfig(cfg); err != nil {
		return err
	}

	seed := cfg.Evolution.Seed
	atlas := sprite.NewAtlas()
	opts := game.Options{
		Rand:     rand.New(rand.NewSource(seed)),
		Atlas:    atlas,
		TickRate: cfg.Simulation.TickRate,
		MaxTicks: cfg.Simulation.MaxTicks,
	}

	var viewer *ui.Viewer
	if !headless {
		rl.InitWindow(int32(cfg.Screen.Width+cfg.Screen.PanelWidth), int32(cfg.Screen.Height), cfg.Screen.Title)
		defer rl.CloseWindow()
		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		viewer = ui.NewViewer(cfg, atlas, cancel)
		defer viewer.Unload()
		opts.Hook = viewer
		// The window's frame rate paces playback instead
		opts.TickRate = 0
	}

	harness := game.NewHarness(cfg, opts)
	var eval evolve.Evaluator = harness
	if viewer != nil {
		viewer.SetPerf(harness.Perf())
		eval = viewer.Watch(harness)
	}

	trainer := evolve.NewTrainer(cfg, eval, rand.New(rand.NewSource(seed+1)))
	rec := newRecorder(cfg, out, harness.Perf())

	slog.Info("starting training",
		"seed", seed,
		"population", cfg.Evolution.Population,
		"generations", cfg.Evolution.Generations,
		"headless", headless,
		"output_dir", out.Dir(),
	)

	summary, err := trainer.Run(ctx, func(g evolve.Generation) error {
		if viewer != nil {
			viewer.Record(g)
		}
		return rec.observe(g)
	})
	if err != nil {
		return err
	}

	slog.Info("training finished",
		"generations", summary.Generations,
		"best_fitness", summary.BestFitness,
		"solved", summary.Solved,
		"aborted", summary.Aborted,
	)
	return nil
}
