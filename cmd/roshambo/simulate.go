package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/simulator"
)

// SimulateCmd plays matches headlessly and prints aggregate statistics.
type SimulateCmd struct {
	Matches  int    `default:"1000" help:"Number of matches to play"`
	Strategy string `default:"random" help:"Player strategy: fixed:<move>, random, cycle, copy, counter"`
	Workers  int    `help:"Parallel workers (defaults to the number of CPUs)"`
}

func (c *SimulateCmd) Run(g *Globals, kctx *kong.Context) error {
	cfg, err := g.settings()
	if err != nil {
		return err
	}
	logger := newLogger(kctx.Stderr, cfg)

	workers := c.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	seed := randutil.Seed(cfg.Game.Seed, quartz.NewReal())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "matches", c.Matches, "strategy", c.Strategy, "workers", workers, "seed", seed)
	stats, err := simulator.New(simulator.Config{
		Matches:     c.Matches,
		TotalRounds: cfg.Game.TotalRounds,
		Strategy:    c.Strategy,
		Seed:        seed,
		Workers:     workers,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(kctx.Stdout, stats.Report(c.Strategy))
	return err
}
