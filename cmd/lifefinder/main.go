package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pazsp/lifefinder/internal/config"
	"github.com/pazsp/lifefinder/internal/engine/geo"
	"github.com/pazsp/lifefinder/internal/engine/notify"
	"github.com/pazsp/lifefinder/internal/engine/storage"
	"github.com/pazsp/lifefinder/internal/tui"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[0] != "" {
		switch os.Args[1] {
		case "search":
			if err := runSearch(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "export":
			if err := runExport(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Println("lifefinder " + version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	// No subcommand → launch TUI
	deps, cleanup, err := buildDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := tui.Run(deps); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// buildDeps wires the engine once; the TUI and the headless commands share
// the same construction path.
func buildDeps() (tui.Deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return tui.Deps{}, nil, err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return tui.Deps{}, nil, fmt.Errorf("opening log: %w", err)
	}

	// The geocache is best-effort; without it every lookup hits the network.
	cache, err := storage.OpenGeoCache(cfg.Geocoder.CachePath)
	if err != nil {
		log.Warn("geocache unavailable", zap.String("path", cfg.Geocoder.CachePath), zap.Error(err))
		cache = nil
	}

	deps := tui.Deps{
		Cfg:        cfg,
		Geocoder:   geo.NewGeocoder(cfg.Geocoder, cache),
		Dispatcher: notify.NewDispatcher(cfg.Notify, log),
		Log:        log,
	}

	cleanup := func() {
		if cache != nil {
			cache.Close()
		}
		log.Sync()
	}
	return deps, cleanup, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	// stdout belongs to the TUI, so logs always go to a file.
	zcfg.OutputPaths = []string{filepath.Join(cfg.Dir, "lifefinder.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	return zcfg.Build()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `lifefinder - find a LifeGroup near you

Usage:
  lifefinder                  Launch interactive TUI
  lifefinder search [flags]   Run a headless search
  lifefinder export [flags]   Export the enriched catalog to CSV
  lifefinder version          Show version

Run 'lifefinder search --help' or 'lifefinder export --help' for flags.
`)
}
