// Package game wires the plugins into one world and runs it under Ebiten.
package game

import (
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/camera"
	"github.com/plus3/handcannon/cannon"
	"github.com/plus3/handcannon/config"
	"github.com/plus3/handcannon/diagnostics"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/ecs/debugui"
	"github.com/plus3/handcannon/hand"
	"github.com/plus3/handcannon/input"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/logging"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/particles"
	"github.com/plus3/handcannon/tween"
	"github.com/plus3/handcannon/vmath"
)

// World is the simulation without any window: storage, systems and loaded
// assets.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Library   *asset.Library
	Cannon    *ecs.EntityRef

	logger *zap.Logger
}

// Options customise NewWorld.
type Options struct {
	Logger *zap.Logger
	// Rand drives projectile hands and particle jitter. Nil uses the global
	// source.
	Rand *rand.Rand
	// Before run ahead of the game systems each frame, e.g. an input poller.
	Before []ecs.System
	// After run once the game systems are done, e.g. the overlay.
	After []ecs.System
}

// Register adds every game component to registry.
func Register(registry *ecs.ComponentRegistry) {
	movement.Register(registry)
	lifetime.Register(registry)
	animation.Register(registry)
	tween.Register(registry)
	camera.Register(registry)
	particles.Register(registry)
	hand.Register(registry)
	cannon.Register(registry)
	debugui.RegisterDebugUIComponents(registry)
}

// NewWorld loads assets, creates the resources every system relies on and
// spawns the cannon. HandAnimations is in place before the first frame.
func NewWorld(cfg config.Config, opts Options) (*World, error) {
	logger := logging.OrNop(opts.Logger)

	library := asset.NewLibrary(assetFS(cfg))
	anims, err := hand.LoadAnimations(library)
	if err != nil {
		return nil, fmt.Errorf("load hand animations: %w", err)
	}

	registry := ecs.NewComponentRegistry()
	Register(registry)
	storage := ecs.NewStorage(registry)

	cam := camera.New()
	cam.Shake = cfg.ShakeSettings()

	storage.AddSingleton(input.ButtonInput{})
	storage.AddSingleton(anims)
	storage.AddSingleton(cam)
	storage.AddSingleton(lifetime.Stats{})
	storage.AddSingleton(diagnostics.New(cfg.Diagnostics.HistoryFrames))
	storage.AddSingleton(debugui.Overlay{Visible: cfg.Diagnostics.Overlay})
	storage.AddSingleton(debugui.ImguiInputState{})
	storage.AddSingleton(ExitRequest{})

	settings := cfg.CannonSettings()
	cannonId := storage.Spawn(cannon.Bundle(settings, vmath.Zero)...)

	scheduler := ecs.NewScheduler(storage)
	for _, system := range opts.Before {
		scheduler.Register(system)
	}
	scheduler.Register(&ControlSystem{})
	scheduler.Register(cannon.NewMoveSystem(settings))
	scheduler.Register(cannon.NewFireSystem(settings, opts.Rand))
	scheduler.Register(hand.NewCycleSystem())
	scheduler.Register(&tween.System{})
	scheduler.Register(&movement.System{})
	scheduler.Register(particles.NewSystem(opts.Rand))
	scheduler.Register(&lifetime.GCSystem{})
	scheduler.Register(&animation.SpriteSystem{})
	scheduler.Register(&hand.SyncSystem{})
	scheduler.Register(&camera.ShakeSystem{})
	scheduler.Register(diagnostics.NewSystem(logger, cfg.Diagnostics.LogInterval, scheduler))
	for _, system := range opts.After {
		scheduler.Register(system)
	}

	logger.Info("world ready",
		zap.Int("textures", library.TextureCount()),
		zap.String("assets", assetSource(cfg)),
		zap.Int("fire_amount", settings.FireAmount),
		zap.Bool("auto_fire", settings.AutoFire),
	)

	return &World{
		Storage:   storage,
		Scheduler: scheduler,
		Library:   library,
		Cannon:    storage.CreateEntityRef(cannonId),
		logger:    logger,
	}, nil
}

func assetFS(cfg config.Config) fs.FS {
	if cfg.Assets.Dir != "" {
		return os.DirFS(cfg.Assets.Dir)
	}
	return asset.Embedded()
}

func assetSource(cfg config.Config) string {
	if cfg.Assets.Dir != "" {
		return cfg.Assets.Dir
	}
	return "embedded"
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) {
	w.Scheduler.Once(dt)
}

// Input is the ButtonInput singleton, for backends that script input.
func (w *World) Input() *input.ButtonInput {
	var buttons *input.ButtonInput
	w.Storage.ReadSingleton(&buttons)
	return buttons
}

// ExitRequested reports whether the exit action has been pressed.
func (w *World) ExitRequested() bool {
	var exit *ExitRequest
	return w.Storage.ReadSingleton(&exit) && exit.Requested
}

// Projectiles counts live projectiles.
func (w *World) Projectiles() int {
	count := 0
	for _, archetype := range w.Storage.GetArchetypes() {
		if archetype.HasComponent(projectileType) {
			count += archetype.Len()
		}
	}
	return count
}
