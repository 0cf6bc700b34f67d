package simulator

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

// Strategy chooses the simulated player's moves. last is nil on the first
// round of a match.
type Strategy interface {
	Name() string
	Next(last *game.RoundResult) rps.Move
}

// StrategyNames lists the strategies accepted by NewStrategy.
var StrategyNames = []string{"fixed:<move>", "random", "cycle", "copy", "counter"}

// NewStrategy builds a strategy by name. rng is used by "random".
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	if move, ok := strings.CutPrefix(name, "fixed:"); ok {
		m, err := rps.ParseMove(move)
		if err != nil {
			return nil, fmt.Errorf("fixed strategy: %w", err)
		}
		return fixedStrategy{move: m}, nil
	}

	switch name {
	case "random":
		if rng == nil {
			return nil, fmt.Errorf("random strategy needs an rng")
		}
		return &randomStrategy{rng: rng}, nil
	case "cycle":
		return &cycleStrategy{}, nil
	case "copy":
		return copyStrategy{}, nil
	case "counter":
		return counterStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", name, strings.Join(StrategyNames, ", "))
	}
}

type fixedStrategy struct {
	move rps.Move
}

func (s fixedStrategy) Name() string                   { return "fixed:" + s.move.String() }
func (s fixedStrategy) Next(*game.RoundResult) rps.Move { return s.move }

type randomStrategy struct {
	rng *rand.Rand
}

func (s *randomStrategy) Name() string { return "random" }

func (s *randomStrategy) Next(*game.RoundResult) rps.Move {
	moves := rps.Moves()
	return moves[s.rng.IntN(len(moves))]
}

// cycleStrategy plays rock, paper, scissors in turn.
type cycleStrategy struct {
	next int
}

func (s *cycleStrategy) Name() string { return "cycle" }

func (s *cycleStrategy) Next(*game.RoundResult) rps.Move {
	moves := rps.Moves()
	m := moves[s.next%len(moves)]
	s.next++
	return m
}

// copyStrategy repeats the computer's previous throw.
type copyStrategy struct{}

func (copyStrategy) Name() string { return "copy" }

func (copyStrategy) Next(last *game.RoundResult) rps.Move {
	if last == nil {
		return rps.Rock
	}
	return last.ComputerMove
}

// counterStrategy throws whatever beats the computer's previous throw.
type counterStrategy struct{}

func (counterStrategy) Name() string { return "counter" }

func (counterStrategy) Next(last *game.RoundResult) rps.Move {
	if last == nil {
		return rps.Paper
	}
	for _, m := range rps.Moves() {
		if m.Beats(last.ComputerMove) {
			return m
		}
	}
	return rps.Rock
}
