// Command handcannon opens the game window.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/handcannon/config"
	"github.com/plus3/handcannon/game"
	"github.com/plus3/handcannon/logging"
)

func main() {
	var (
		configFile = flag.String("config", "", "YAML configuration file; empty uses the defaults")
		logLevel   = flag.String("log-level", "", "Override logging.level (debug, info, warn, error)")
		debug      = flag.Bool("debug", false, "Show the debug overlay at startup")
		assets     = flag.String("assets", "", "Load hands/*.png from this directory instead of the embedded sheets")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *debug {
		cfg.Diagnostics.Overlay = true
	}
	if *assets != "" {
		cfg.Assets.Dir = *assets
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting",
		zap.String("config", *configFile),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Window.TPS),
	)

	if err := game.Run(cfg, logger); err != nil {
		logger.Fatal("game exited with error", zap.Error(err))
	}
	logger.Info("bye")
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
