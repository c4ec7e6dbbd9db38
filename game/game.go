package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/handcannon/config"
	"github.com/plus3/handcannon/diagnostics"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/ecs/debugui"
	debugui_ebiten "github.com/plus3/handcannon/ecs/debugui/ebiten"
	"github.com/plus3/handcannon/input/keyboard"
	"github.com/plus3/handcannon/logging"
)

// Game implements ebiten.Game around a World.
type Game struct {
	world    *World
	renderer *Renderer
	imgui    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	logger   *zap.Logger
	width    int
	height   int
}

// New builds a playable game from cfg. The Ebiten window is configured but
// not opened.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	logger = logging.OrNop(logger)

	bindings, err := cfg.KeyBindings()
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	backend := debugui_ebiten.NewImguiBackend()
	backend.CreateWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)

	world, err := NewWorld(cfg, Options{
		Logger: logger,
		Before: []ecs.System{keyboard.NewSystem(bindings)},
		After:  []ecs.System{&debugui.ImguiSystem{}},
	})
	if err != nil {
		return nil, err
	}

	ecs.NewSingleton(world.Storage, backend)
	debugui.SpawnDebugUI(world.Storage)
	debugui.SpawnWindow(world.Storage, "Performance Stats", diagnostics.NewPerformanceWindow(world.Scheduler))

	return &Game{
		world:    world,
		renderer: NewRenderer(world.Storage, world.Library, logger.Named("render")),
		imgui:    ecs.NewSingleton[debugui_ebiten.ImguiBackend](world.Storage),
		logger:   logger,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}, nil
}

func (g *Game) Update() error {
	backend := g.imgui.Get()
	backend.BeginFrame()
	g.world.Step(1.0 / float64(ebiten.TPS()))
	backend.EndFrame()

	if g.world.ExitRequested() {
		g.logger.Info("exit requested")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	g.imgui.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Get().Layout(g.width, g.height)
	return g.width, g.height
}

// Run opens the window and blocks until the player quits.
func Run(cfg config.Config, logger *zap.Logger) error {
	g, err := New(cfg, logger)
	if err != nil {
		return err
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
