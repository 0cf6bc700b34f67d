package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/matchid"
	"github.com/lox/roshambo/internal/randutil"
)

// IDGenerator assigns identifiers to matches.
type IDGenerator interface {
	Generate() string
}

// Option configures an Engine during creation.
type Option func(*engineConfig) error

type engineConfig struct {
	totalRounds int
	moves       MoveSource
	logger      *log.Logger
	clock       quartz.Clock
	bus         EventBus
	ids         IDGenerator
}

// WithTotalRounds sets the number of rounds per match. It must be at least 1.
func WithTotalRounds(n int) Option {
	return func(c *engineConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: total rounds must be at least 1, got %d", ErrInvalidConfig, n)
		}
		c.totalRounds = n
		return nil
	}
}

// WithMoveSource sets where the computer's throws come from.
func WithMoveSource(src MoveSource) Option {
	return func(c *engineConfig) error {
		if src == nil {
			return fmt.Errorf("%w: nil move source", ErrInvalidConfig)
		}
		c.moves = src
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *engineConfig) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithClock sets the clock used to timestamp events and match IDs.
func WithClock(clock quartz.Clock) Option {
	return func(c *engineConfig) error {
		if clock != nil {
			c.clock = clock
		}
		return nil
	}
}

// WithEventBus publishes engine events to bus.
func WithEventBus(bus EventBus) Option {
	return func(c *engineConfig) error {
		c.bus = bus
		return nil
	}
}

// WithMatchIDs replaces the generator used for match identifiers.
func WithMatchIDs(ids IDGenerator) Option {
	return func(c *engineConfig) error {
		if ids != nil {
			c.ids = ids
		}
		return nil
	}
}

func (c *engineConfig) applyDefaults() {
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if c.moves == nil {
		c.moves = &RandomMoveSource{rng: randutil.New(randutil.Seed(nil, c.clock))}
	}
	if c.ids == nil {
		c.ids = matchid.NewGenerator(nil, c.clock)
	}
}
