package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/roshambo/internal/rps"
)

// MoveSource picks the computer's throw.
type MoveSource interface {
	NextMove() rps.Move
}

// RandomMoveSource draws uniformly from the three moves.
type RandomMoveSource struct {
	rng *rand.Rand
}

// NewRandomMoveSource wraps rng. The rng is required so that every caller
// decides how it is seeded.
func NewRandomMoveSource(rng *rand.Rand) (*RandomMoveSource, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: random move source needs an rng", ErrInvalidConfig)
	}
	return &RandomMoveSource{rng: rng}, nil
}

func (s *RandomMoveSource) NextMove() rps.Move {
	moves := rps.Moves()
	return moves[s.rng.IntN(len(moves))]
}

// ScriptedMoveSource replays a fixed sequence, starting over once exhausted.
type ScriptedMoveSource struct {
	moves []rps.Move
	next  int
}

// NewScriptedMoveSource returns a source that yields moves in order.
func NewScriptedMoveSource(moves ...rps.Move) (*ScriptedMoveSource, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w: scripted move source needs at least one move", ErrInvalidConfig)
	}
	for _, m := range moves {
		if !m.Valid() {
			return nil, fmt.Errorf("%w: scripted move %d", rps.ErrInvalidMove, int(m))
		}
	}
	return &ScriptedMoveSource{moves: append([]rps.Move(nil), moves...)}, nil
}

func (s *ScriptedMoveSource) NextMove() rps.Move {
	m := s.moves[s.next]
	s.next = (s.next + 1) % len(s.moves)
	return m
}

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func() rps.Move

func (f MoveSourceFunc) NextMove() rps.Move { return f() }
