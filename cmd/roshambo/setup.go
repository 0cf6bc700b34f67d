package main

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/config"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/randutil"
)

// settings loads the configuration file and layers the global flags on top.
func (g *Globals) settings() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (g *Globals) apply(cfg *config.Config) {
	if g.Rounds != 0 {
		cfg.Game.TotalRounds = g.Rounds
	}
	if g.Seed != nil {
		cfg.Game.Seed = g.Seed
	}
	if g.Debug {
		cfg.UI.LogLevel = "debug"
	}
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// engineFactory returns a constructor handing out engines with distinct,
// reproducible seeds derived from the configured one.
func engineFactory(cfg *config.Config, clock quartz.Clock, logger *log.Logger) func() (*game.Engine, error) {
	base := randutil.Seed(cfg.Game.Seed, clock)
	logger.Info("Using seed", "seed", base, "explicit", cfg.Game.Seed != nil)

	var next atomic.Int64
	return func() (*game.Engine, error) {
		seed := base + next.Add(1) - 1
		source, err := game.NewRandomMoveSource(randutil.New(seed))
		if err != nil {
			return nil, err
		}
		return game.NewEngine(
			game.WithTotalRounds(cfg.Game.TotalRounds),
			game.WithMoveSource(source),
			game.WithClock(clock),
			game.WithLogger(logger),
		)
	}
}
