package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/tui"
)

// PlayCmd runs the terminal shell. Logs go to the configured file so they
// do not corrupt the screen.
type PlayCmd struct{}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.settings()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()
	logger := newLogger(logFile, cfg)

	engine, err := engineFactory(cfg, quartz.NewReal(), logger)()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, engine, logger, tui.Options{Theme: cfg.UI.Theme})
}
