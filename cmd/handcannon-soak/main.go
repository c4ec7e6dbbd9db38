// Command handcannon-soak runs the game world headless under scripted input
// and reports frame times, entity counts and memory use.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/handcannon/config"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/game"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/logging"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file; empty uses the defaults")
		duration   = flag.Duration("duration", 5*time.Minute, "Simulated time to run for")
		dt         = flag.Float64("dt", 1.0/60, "Frame delta in seconds")
		fireEvery  = flag.Int("fire-every", 6, "Press fire once every N frames; 0 disables")
		cycleEvery = flag.Int("cycle-every", 30, "Press cycle once every N frames; 0 disables")
		moveEvery  = flag.Int("move-every", 45, "Move once every N frames; 0 disables")
		seed       = flag.Uint64("seed", 1, "Seed for projectile hands and particle jitter")
		gcPause    = flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report")
		profMode   = flag.String("profile", "", "Profile the run: cpu, mem, allocs or trace")
		profDir    = flag.String("profile-dir", ".", "Directory for profile output")
	)
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		cfg = loaded
	}
	if *dt <= 0 {
		fmt.Fprintln(os.Stderr, "-dt must be positive")
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	script := &Script{FireEvery: *fireEvery, CycleEvery: *cycleEvery, MoveEvery: *moveEvery}
	world, err := game.NewWorld(cfg, game.Options{
		Logger: logger,
		Rand:   rand.New(rand.NewPCG(*seed, *seed)),
		Before: []ecs.System{script},
	})
	if err != nil {
		logger.Fatal("create world", zap.Error(err))
	}

	frames := int(math.Ceil(duration.Seconds() / *dt))
	report := &Report{
		Duration:       *duration,
		Delta:          ecs.Seconds(*dt),
		FireEvery:      *fireEvery,
		CycleEvery:     *cycleEvery,
		MoveEvery:      *moveEvery,
		FireAmount:     cfg.Cannon.FireAmount,
		GCPauseMetrics: *gcPause,
		ProjectileCap:  projectileCap(cfg.CannonSettings(), *fireEvery, *dt),
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, frames),
		},
	}

	prof, err := startProfile(*profMode, *profDir)
	if err != nil {
		logger.Fatal("start profile", zap.Error(err))
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	logger.Info("soak started", zap.Int("frames", frames), zap.Duration("simulated", *duration))

	startTime := time.Now()
	for range frames {
		updateStart := time.Now()
		world.Step(*dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		report.PeakProjectiles = max(report.PeakProjectiles, world.Projectiles())
		report.PeakEntities = max(report.PeakEntities, world.Storage.EntityCount())
	}
	report.TotalTime = time.Since(startTime)
	prof.Stop()
	report.Frames = script.Frames()
	report.FinalEntities = world.Storage.EntityCount()
	report.Archetypes = len(world.Storage.GetArchetypes())
	var stats *lifetime.Stats
	if world.Storage.ReadSingleton(&stats) {
		report.Despawned = stats.Despawned
	}
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("soak finished",
		zap.Duration("wall", report.TotalTime),
		zap.Int("peak_projectiles", report.PeakProjectiles),
		zap.Int64("despawned", report.Despawned),
	)

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")

	if report.ProjectileCap > 0 && report.PeakProjectiles > report.ProjectileCap {
		logger.Error("projectiles were not reclaimed",
			zap.Int("peak", report.PeakProjectiles),
			zap.Int("cap", report.ProjectileCap),
		)
		os.Exit(1)
	}
}
