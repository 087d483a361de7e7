// Package main runs the gltut demo scene.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/gltut/internal/config"
	"github.com/Faultbox/gltut/internal/engine/engine"
	"github.com/Faultbox/gltut/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogging(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== gltut ===", zap.String("backend", cfg.Window.Backend))

	if err := run(cfg); err != nil {
		logger.Error("demo failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("demo closed normally")
}

func initLogging(cfg config.LoggingConfig) error {
	file := logger.FileConfig{}
	if cfg.LogFile != "" {
		file = logger.DefaultFileConfig(cfg.LogFile)
		file.MaxSizeMB = cfg.MaxSizeMB
		file.MaxBackups = cfg.MaxBackups
		file.MaxAgeDays = cfg.MaxAgeDays
		file.JSON = cfg.JSONFile
	}
	return logger.InitWithFileConfig(cfg.Level, file, true)
}

func run(cfg *config.Config) (err error) {
	e, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer func() {
		if closeErr := e.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	d, err := newDemo(e)
	if err != nil {
		return fmt.Errorf("building demo scene: %w", err)
	}
	defer d.Close()

	return e.Run(cfg.Demo.MaxFrames)
}
