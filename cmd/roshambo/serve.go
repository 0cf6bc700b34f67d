package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/server"
)

// ServeCmd runs the browser shell.
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to the configured address and port)"`
}

func (c *ServeCmd) Run(g *Globals, kctx *kong.Context) error {
	cfg, err := g.settings()
	if err != nil {
		return err
	}
	logger := newLogger(kctx.Stderr, cfg)
	clock := quartz.NewReal()

	addr := c.Addr
	if addr == "" {
		addr = cfg.Addr()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(engineFactory(cfg, clock, logger), logger, server.WithClock(clock))
	logger.Info("Starting roshambo server", "address", addr, "total_rounds", cfg.Game.TotalRounds)
	return srv.ListenAndServe(ctx, addr)
}
