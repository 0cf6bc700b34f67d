// Package simulator plays many matches headlessly and reports how a player
// strategy fares against the engine's random computer.
package simulator

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/rps"
)

// Config holds configuration for running simulations
type Config struct {
	Matches     int
	TotalRounds int
	Strategy    string
	Seed        int64
	Workers     int
	Logger      *log.Logger
}

// Simulator runs match simulations
type Simulator struct {
	config Config
}

// New creates a simulator. Zero values fall back to one worker and the
// default match length.
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.TotalRounds == 0 {
		config.TotalRounds = game.DefaultTotalRounds
	}
	return &Simulator{config: config}
}

// Run plays every match and returns the merged statistics. Match i is
// seeded from Seed+i, so results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	if s.config.Matches < 0 {
		return nil, fmt.Errorf("matches must not be negative, got %d", s.config.Matches)
	}
	// Fail on a bad strategy name before starting any worker.
	if _, err := NewStrategy(s.config.Strategy, randutil.New(s.config.Seed)); err != nil {
		return nil, err
	}

	workers := min(s.config.Workers, max(s.config.Matches, 1))
	results := make([]*Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, workers)
			if err != nil {
				return err
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &Statistics{}
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger().Info("Simulation complete",
		"matches", total.Matches,
		"strategy", s.config.Strategy,
		"win_rate", fmt.Sprintf("%.3f", total.WinRate()))
	return total, nil
}

// runWorker plays matches worker, worker+stride, ... on a single engine,
// resetting between matches.
func (s *Simulator) runWorker(ctx context.Context, worker, stride int) (*Statistics, error) {
	var computerRNG *rand.Rand
	source := game.MoveSourceFunc(func() rps.Move {
		moves := rps.Moves()
		return moves[computerRNG.IntN(len(moves))]
	})

	// Engines log each finished match at info; keep that out of the report.
	engineLogger := s.logger().With("worker", worker)
	if engineLogger.GetLevel() == log.InfoLevel {
		engineLogger.SetLevel(log.WarnLevel)
	}

	stats := &Statistics{}
	bus := game.NewEventBus()
	bus.Subscribe(stats)

	engine, err := game.NewEngine(
		game.WithTotalRounds(s.config.TotalRounds),
		game.WithMoveSource(source),
		game.WithLogger(engineLogger),
		game.WithEventBus(bus),
	)
	if err != nil {
		return nil, err
	}

	for i := worker; i < s.config.Matches; i += stride {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		seed := s.config.Seed + int64(i)
		computerRNG = randutil.New(seed)
		strategy, err := NewStrategy(s.config.Strategy, randutil.New(^seed))
		if err != nil {
			return nil, err
		}

		engine.ResetGame()
		if err := playMatch(engine, strategy); err != nil {
			return nil, fmt.Errorf("match %d: %w", i, err)
		}
	}

	state := engine.State()
	if state.PlayerWins != stats.PlayerMatches || state.ComputerWins != stats.ComputerMatches {
		return nil, fmt.Errorf("worker %d: engine tallies %d/%d disagree with statistics %d/%d",
			worker, state.PlayerWins, state.ComputerWins, stats.PlayerMatches, stats.ComputerMatches)
	}
	return stats, nil
}

// playMatch drives one match to the end. Results reach the statistics
// through the engine's event bus.
func playMatch(engine *game.Engine, strategy Strategy) error {
	var last *game.RoundResult
	for {
		res, err := engine.SubmitMove(strategy.Next(last))
		if err != nil {
			return err
		}
		if res.Summary != nil {
			return nil
		}
		if _, err := engine.AdvanceRound(); err != nil {
			return err
		}
		last = &res
	}
}

func (s *Simulator) logger() *log.Logger {
	if s.config.Logger == nil {
		return log.Default()
	}
	return s.config.Logger
}
