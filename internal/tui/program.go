package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/roshambo/internal/game"
)

// Run starts the terminal shell and blocks until the player quits or ctx
// is cancelled.
func Run(ctx context.Context, engine *game.Engine, logger *log.Logger, opts Options) error {
	// Honour NO_COLOR and CLICOLOR_FORCE.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	model := NewModel(engine, logger, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	logger.Info("Starting terminal shell", "total_rounds", engine.TotalRounds(), "theme", opts.Theme)
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("Terminal shell interrupted")
			return nil
		}
		return fmt.Errorf("run terminal shell: %w", err)
	}

	state := engine.State()
	logger.Info("Terminal shell closed", "player_wins", state.PlayerWins, "computer_wins", state.ComputerWins)
	return nil
}
