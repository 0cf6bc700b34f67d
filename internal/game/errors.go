package game

import (
	"errors"

	"github.com/lox/roshambo/internal/rps"
)

var (
	// ErrInvalidMove is returned when the submitted move is not rock, paper or scissors.
	ErrInvalidMove = rps.ErrInvalidMove

	// ErrInvalidTransition is returned when an operation is not allowed in the current phase.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrInvalidConfig is returned by NewEngine for unusable options.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)
