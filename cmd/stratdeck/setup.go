package main

import (
	"fmt"

	"github.com/newthinker/stratdeck/internal/config"
	"github.com/newthinker/stratdeck/internal/logger"
	"go.uber.org/zap"
)

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log := logger.Must(logger.Options{
		Development: debug || cfg.Log.Development,
		Level:       level,
	})
	if cfgFile == "" {
		log.Warn("no config file specified, using defaults")
	}

	return cfg, log, nil
}
