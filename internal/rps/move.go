// Package rps defines the moves of Rock-Paper-Scissors and the rule that
// decides a single throw.
package rps

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned for anything that is not rock, paper or scissors.
var ErrInvalidMove = errors.New("invalid move")

// Move is one of the three throws. The zero value is not a valid move.
type Move int

const (
	Rock Move = iota + 1
	Paper
	Scissors
)

var allMoves = [...]Move{Rock, Paper, Scissors}

// Moves returns every valid move in canonical order.
func Moves() []Move {
	moves := make([]Move, len(allMoves))
	copy(moves, allMoves[:])
	return moves
}

// Valid reports whether m is one of the three throws.
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// String returns the lowercase name of the move
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// Beats reports whether m defeats other. Rock crushes scissors, scissors cut
// paper, paper covers rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	default:
		return false
	}
}

// ParseMove parses a move name or its single letter shorthand.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMove, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
