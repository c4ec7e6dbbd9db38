// Package config loads the game's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/plus3/handcannon/camera"
	"github.com/plus3/handcannon/cannon"
	"github.com/plus3/handcannon/input/keyboard"
	"github.com/plus3/handcannon/logging"
)

// Config is the full game configuration. Missing keys keep their defaults.
type Config struct {
	Window      WindowConfig        `yaml:"window"`
	Logging     logging.Config      `yaml:"logging"`
	Assets      AssetsConfig        `yaml:"assets"`
	Cannon      CannonConfig        `yaml:"cannon"`
	Camera      CameraConfig        `yaml:"camera"`
	Diagnostics DiagnosticsConfig   `yaml:"diagnostics"`
	Bindings    map[string][]string `yaml:"bindings"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
	VSync  bool   `yaml:"vsync"`
}

// AssetsConfig points at a directory holding hands/*.png. Empty uses the
// sheets embedded in the binary.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

type CannonConfig struct {
	MoveDistance       float64       `yaml:"move_distance"`
	MoveDuration       time.Duration `yaml:"move_duration"`
	FireAmount         int           `yaml:"fire_amount"`
	FireSpread         float64       `yaml:"fire_spread"`
	ProjectileSpeed    float64       `yaml:"projectile_speed"`
	ProjectileLifetime time.Duration `yaml:"projectile_lifetime"`
	AutoFire           bool          `yaml:"auto_fire"`
	FireRate           time.Duration `yaml:"fire_rate"`
}

type CameraConfig struct {
	MaxOffset      float64 `yaml:"max_offset"`
	DecayPerSecond float64 `yaml:"decay_per_second"`
	Frequency      float64 `yaml:"frequency"`
	Power          float64 `yaml:"power"`
}

type DiagnosticsConfig struct {
	// LogInterval is how often a diagnostics line is logged; 0 disables it.
	LogInterval   time.Duration `yaml:"log_interval"`
	HistoryFrames int           `yaml:"history_frames"`
	// Overlay shows the debug overlay at startup.
	Overlay bool `yaml:"overlay"`
}

// Default returns the stock configuration.
func Default() Config {
	settings := cannon.DefaultSettings()
	shake := camera.DefaultShake()

	return Config{
		Window: WindowConfig{
			Title:  "Hand Cannon",
			Width:  1280,
			Height: 720,
			TPS:    60,
			VSync:  true,
		},
		Logging: logging.DefaultConfig(),
		Cannon: CannonConfig{
			MoveDistance:       settings.MoveDistance,
			MoveDuration:       settings.MoveDuration,
			FireAmount:         settings.FireAmount,
			FireSpread:         settings.FireSpread,
			ProjectileSpeed:    settings.ProjectileSpeed,
			ProjectileLifetime: settings.ProjectileLifetime,
			AutoFire:           settings.AutoFire,
			FireRate:           settings.FireRate,
		},
		Camera: CameraConfig{
			MaxOffset:      shake.MaxOffset,
			DecayPerSecond: shake.DecayPerSecond,
			Frequency:      shake.Frequency,
			Power:          shake.Power,
		},
		Diagnostics: DiagnosticsConfig{
			LogInterval:   10 * time.Second,
			HistoryFrames: 120,
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Read(r io.Reader) (Config, error) {
	cfg := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		err = multierr.Append(err, fmt.Errorf("window.tps: must be positive, got %d", c.Window.TPS))
	}

	err = multierr.Append(err, c.Logging.Validate())

	if c.Assets.Dir != "" {
		if info, statErr := os.Stat(c.Assets.Dir); statErr != nil {
			err = multierr.Append(err, fmt.Errorf("assets.dir: %w", statErr))
		} else if !info.IsDir() {
			err = multierr.Append(err, fmt.Errorf("assets.dir: %q is not a directory", c.Assets.Dir))
		}
	}

	if c.Cannon.MoveDistance <= 0 {
		err = multierr.Append(err, errors.New("cannon.move_distance: must be positive"))
	}
	if c.Cannon.MoveDuration <= 0 {
		err = multierr.Append(err, errors.New("cannon.move_duration: must be positive"))
	}
	if c.Cannon.FireAmount < 1 {
		err = multierr.Append(err, fmt.Errorf("cannon.fire_amount: must be at least 1, got %d", c.Cannon.FireAmount))
	}
	if c.Cannon.ProjectileLifetime <= 0 {
		err = multierr.Append(err, errors.New("cannon.projectile_lifetime: must be positive"))
	}
	if c.Cannon.AutoFire && c.Cannon.FireRate <= 0 {
		err = multierr.Append(err, errors.New("cannon.fire_rate: must be positive when auto_fire is on"))
	}

	if c.Camera.MaxOffset < 0 || c.Camera.DecayPerSecond < 0 {
		err = multierr.Append(err, errors.New("camera: max_offset and decay_per_second must not be negative"))
	}

	if c.Diagnostics.LogInterval < 0 {
		err = multierr.Append(err, errors.New("diagnostics.log_interval: must not be negative"))
	}
	if c.Diagnostics.HistoryFrames <= 0 {
		err = multierr.Append(err, errors.New("diagnostics.history_frames: must be positive"))
	}

	if _, bindErr := keyboard.ParseBindings(c.Bindings); bindErr != nil {
		err = multierr.Append(err, fmt.Errorf("bindings: %w", bindErr))
	}

	return err
}

// CannonSettings converts the cannon section.
func (c Config) CannonSettings() cannon.Settings {
	return cannon.Settings{
		MoveDistance:       c.Cannon.MoveDistance,
		MoveDuration:       c.Cannon.MoveDuration,
		FireAmount:         c.Cannon.FireAmount,
		FireSpread:         c.Cannon.FireSpread,
		ProjectileSpeed:    c.Cannon.ProjectileSpeed,
		ProjectileLifetime: c.Cannon.ProjectileLifetime,
		AutoFire:           c.Cannon.AutoFire,
		FireRate:           c.Cannon.FireRate,
	}
}

// ShakeSettings converts the camera section.
func (c Config) ShakeSettings() camera.ShakeSettings {
	return camera.ShakeSettings{
		MaxOffset:      c.Camera.MaxOffset,
		DecayPerSecond: c.Camera.DecayPerSecond,
		Frequency:      c.Camera.Frequency,
		Power:          c.Camera.Power,
	}
}

// KeyBindings resolves the bindings section against the default keys.
func (c Config) KeyBindings() (keyboard.Bindings, error) {
	return keyboard.ParseBindings(c.Bindings)
}
