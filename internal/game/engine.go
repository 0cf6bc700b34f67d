package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/rps"
)

// Engine runs one session of matches. It is not safe for concurrent use;
// shells drive it from a single goroutine.
type Engine struct {
	totalRounds int
	moves       MoveSource
	logger      *log.Logger
	clock       quartz.Clock
	bus         EventBus
	ids         IDGenerator

	matchID       string
	round         int
	playerScore   int
	computerScore int
	playerWins    int
	computerWins  int
	phase         Phase
	summary       *MatchSummary
}

// NewEngine creates an engine positioned at round 1 of a fresh match.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{totalRounds: DefaultTotalRounds}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()

	e := &Engine{
		totalRounds: cfg.totalRounds,
		moves:       cfg.moves,
		logger:      cfg.logger.WithPrefix("engine"),
		clock:       cfg.clock,
		bus:         cfg.bus,
		ids:         cfg.ids,
	}
	e.startMatch()
	e.logger.Debug("Engine created", "match", e.matchID, "total_rounds", e.totalRounds)
	return e, nil
}

// TotalRounds returns the configured match length.
func (e *Engine) TotalRounds() int {
	return e.totalRounds
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// State returns a snapshot of the engine.
func (e *Engine) State() MatchState {
	return MatchState{
		MatchID:       e.matchID,
		Round:         e.round,
		TotalRounds:   e.totalRounds,
		PlayerScore:   e.playerScore,
		ComputerScore: e.computerScore,
		PlayerWins:    e.playerWins,
		ComputerWins:  e.computerWins,
		Phase:         e.phase,
	}
}

// RoundInfo describes the current round. After the match is over Remaining
// is zero.
func (e *Engine) RoundInfo() RoundInfo {
	return newRoundInfo(e.round, e.totalRounds)
}

// Summary returns the result of the match once it is over.
func (e *Engine) Summary() (MatchSummary, bool) {
	if e.summary == nil {
		return MatchSummary{}, false
	}
	return *e.summary, true
}

// SubmitMove plays the player's move against a freshly drawn computer move.
// It is only accepted while awaiting a move; otherwise it fails with
// ErrInvalidTransition and nothing changes.
func (e *Engine) SubmitMove(playerMove rps.Move) (RoundResult, error) {
	if e.phase != AwaitingMove {
		return RoundResult{}, e.transitionError("submit move")
	}
	if !playerMove.Valid() {
		return RoundResult{}, fmt.Errorf("%w: %d", ErrInvalidMove, int(playerMove))
	}

	computerMove := e.moves.NextMove()
	if !computerMove.Valid() {
		return RoundResult{}, fmt.Errorf("%w: move source returned %d", ErrInvalidMove, int(computerMove))
	}
	outcome := rps.DetermineOutcome(playerMove, computerMove)
	switch outcome {
	case rps.PlayerWin:
		e.playerScore++
	case rps.ComputerWin:
		e.computerScore++
	}

	result := RoundResult{
		Round:         e.round,
		PlayerMove:    playerMove,
		ComputerMove:  computerMove,
		Outcome:       outcome,
		PlayerScore:   e.playerScore,
		ComputerScore: e.computerScore,
	}

	e.logger.Debug("Round resolved",
		"match", e.matchID,
		"round", e.round,
		"player", playerMove,
		"computer", computerMove,
		"outcome", outcome)

	if e.round < e.totalRounds {
		e.phase = RoundResolved
		e.publish(RoundResolvedEvent{MatchID: e.matchID, Result: result, timestamp: e.clock.Now()})
		return result, nil
	}

	summary := e.finalize()
	result.Summary = &summary
	e.publish(RoundResolvedEvent{MatchID: e.matchID, Result: result, timestamp: e.clock.Now()})
	e.publish(MatchOverEvent{Summary: summary, timestamp: e.clock.Now()})
	return result, nil
}

// AdvanceRound opens the next round after a resolved one.
func (e *Engine) AdvanceRound() (RoundInfo, error) {
	if e.phase != RoundResolved {
		return RoundInfo{}, e.transitionError("advance round")
	}

	e.round++
	e.phase = AwaitingMove
	info := e.RoundInfo()

	e.logger.Debug("Round advanced", "match", e.matchID, "round", info.Round, "remaining", info.Remaining)
	e.publish(RoundAdvancedEvent{MatchID: e.matchID, Info: info, timestamp: e.clock.Now()})
	return info, nil
}

// ResetGame starts a new match. Session match wins are kept.
func (e *Engine) ResetGame() MatchState {
	previous := e.matchID
	e.startMatch()
	state := e.State()

	e.logger.Debug("Match reset", "previous", previous, "match", e.matchID,
		"player_wins", e.playerWins, "computer_wins", e.computerWins)
	e.publish(MatchResetEvent{State: state, timestamp: e.clock.Now()})
	return state
}

func (e *Engine) startMatch() {
	e.matchID = e.ids.Generate()
	e.round = 1
	e.playerScore = 0
	e.computerScore = 0
	e.phase = AwaitingMove
	e.summary = nil
}

// finalize settles the match after the last round. The round counter moves
// one past the total so no further round is playable.
func (e *Engine) finalize() MatchSummary {
	winner := rps.Nobody
	switch {
	case e.playerScore > e.computerScore:
		winner = rps.Player
		e.playerWins++
	case e.computerScore > e.playerScore:
		winner = rps.Computer
		e.computerWins++
	}

	e.round++
	e.phase = MatchOver

	e.logger.Info("Match over",
		"match", e.matchID,
		"winner", winner,
		"player_score", e.playerScore,
		"computer_score", e.computerScore)

	summary := MatchSummary{
		MatchID:       e.matchID,
		Winner:        winner,
		PlayerScore:   e.playerScore,
		ComputerScore: e.computerScore,
		PlayerWins:    e.playerWins,
		ComputerWins:  e.computerWins,
	}
	e.summary = &summary
	return summary
}

func (e *Engine) transitionError(op string) error {
	return fmt.Errorf("%w: cannot %s in phase %s", ErrInvalidTransition, op, e.phase)
}

func (e *Engine) publish(event GameEvent) {
	if e.bus != nil {
		e.bus.Publish(event)
	}
}
