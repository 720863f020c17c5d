// Package main is the entry point for the kopimap demo.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/config"
	"github.com/Faultbox/kopimap/internal/game"
	"github.com/Faultbox/kopimap/internal/logger"
)

// exitInitFailure is returned for any start-up failure.
const exitInitFailure = -1

func init() {
	// SDL and OpenGL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return exitInitFailure
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return exitInitFailure
		}
		fmt.Printf("Config written to %s\n", path)
		return 0
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return exitInitFailure
	}
	defer logger.Sync()

	logger.Info("=== kopimap ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	g, err := game.New(cfg)
	if err != nil {
		logger.Error("failed to start", zap.Error(err))
		return exitInitFailure
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		logger.Error("main loop error", zap.Error(err))
		return 1
	}

	logger.Info("closed normally")
	return 0
}
