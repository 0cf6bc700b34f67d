package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

// Error codes sent to the page
const (
	CodeInvalidMessage    = "invalid_message"
	CodeInvalidMove       = "invalid_move"
	CodeInvalidTransition = "invalid_transition"
	CodeUnknownType       = "unknown_message_type"
)

// Session adapts one engine to the browser protocol. Every request produces
// exactly one reply.
type Session struct {
	engine *game.Engine
	clock  quartz.Clock
	logger *log.Logger
}

// NewSession wraps engine.
func NewSession(engine *game.Engine, clock quartz.Clock, logger *log.Logger) *Session {
	return &Session{
		engine: engine,
		clock:  clock,
		logger: logger.WithPrefix("session").With("match", engine.State().MatchID),
	}
}

// Engine returns the session's engine.
func (s *Session) Engine() *game.Engine {
	return s.engine
}

// Handle processes a client message and returns the reply.
func (s *Session) Handle(msg *Message) *Message {
	s.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeMove:
		var data MoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return s.errorMessage(CodeInvalidMessage, "Failed to parse move data")
		}
		return s.handleMove(data)

	case MessageTypeNext:
		return s.handleNext()

	case MessageTypeReset:
		return s.handleReset()

	case MessageTypeState:
		return s.Snapshot(display.Message{})

	default:
		return s.errorMessage(CodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (s *Session) handleMove(data MoveData) *Message {
	move, err := rps.ParseMove(data.Move)
	if err != nil {
		return s.errorMessage(CodeInvalidMove, err.Error())
	}

	res, err := s.engine.SubmitMove(move)
	if err != nil {
		return s.engineError(err)
	}

	player, computer := display.Choices(res)
	ps, cs := display.Scores(res.PlayerScore, res.ComputerScore)
	elements := Elements{
		ElementPlayerChoice:   player,
		ElementComputerChoice: computer,
		ElementResult:         display.RoundOutcome(res),
		ElementPlayerScore:    ps,
		ElementComputerScore:  cs,
	}
	controls := Controls{NextRound: true}

	if res.Summary != nil {
		elements[ElementResult] = display.MatchResult(*res.Summary)
		elements[ElementRoundsRemaining] = display.GameOverBanner(*res.Summary)
		pw, cw := display.OverallWins(res.Summary.PlayerWins, res.Summary.ComputerWins)
		elements[ElementPlayerWins] = pw
		elements[ElementComputerWins] = cw
		controls = Controls{PlayAgain: true}
		s.logger.Info("Match finished", "winner", res.Summary.Winner,
			"player_score", res.Summary.PlayerScore, "computer_score", res.Summary.ComputerScore)
	}

	return s.message(MessageTypeRoundResult, RoundResultData{Result: res, Elements: elements, Controls: controls})
}

func (s *Session) handleNext() *Message {
	info, err := s.engine.AdvanceRound()
	if err != nil {
		return s.engineError(err)
	}
	return s.message(MessageTypeRoundInfo, RoundInfoData{
		Round: info,
		Elements: Elements{
			ElementRoundInfo:       display.RoundBanner(info),
			ElementRoundsRemaining: display.RoundsRemaining(info),
		},
		Controls: Controls{Choices: true},
	})
}

// handleReset starts a new match and clears the previous throws from the
// page.
func (s *Session) handleReset() *Message {
	s.engine.ResetGame()
	data := s.snapshotData(display.NewGame(s.engine.TotalRounds()))
	data.Elements[ElementPlayerChoice] = display.Message{}
	data.Elements[ElementComputerChoice] = display.Message{}
	return s.message(MessageTypeNewMatch, data)
}

// Snapshot renders the whole page from the engine's current state. result,
// when set, fills the result element.
func (s *Session) Snapshot(result display.Message) *Message {
	return s.message(MessageTypeSnapshot, s.snapshotData(result))
}

func (s *Session) snapshotData(result display.Message) SnapshotData {
	state := s.engine.State()
	info := s.engine.RoundInfo()

	ps, cs := display.Scores(state.PlayerScore, state.ComputerScore)
	pw, cw := display.OverallWins(state.PlayerWins, state.ComputerWins)
	elements := Elements{
		ElementPlayerScore:   ps,
		ElementComputerScore: cs,
		ElementPlayerWins:    pw,
		ElementComputerWins:  cw,
	}
	if result.Text != "" {
		elements[ElementResult] = result
	}

	var controls Controls
	switch state.Phase {
	case game.AwaitingMove:
		elements[ElementRoundInfo] = display.RoundBanner(info)
		elements[ElementRoundsRemaining] = display.RoundsRemaining(info)
		controls.Choices = true
	case game.RoundResolved:
		elements[ElementRoundInfo] = display.RoundBanner(info)
		elements[ElementRoundsRemaining] = display.RoundsRemaining(info)
		controls.NextRound = true
	case game.MatchOver:
		if summary, ok := s.engine.Summary(); ok {
			elements[ElementRoundsRemaining] = display.GameOverBanner(summary)
			if result.Text == "" {
				elements[ElementResult] = display.MatchResult(summary)
			}
		}
		controls.PlayAgain = true
	}

	return SnapshotData{
		State:    state,
		Round:    info,
		Elements: elements,
		Controls: controls,
	}
}

func (s *Session) engineError(err error) *Message {
	s.logger.Warn("Engine rejected request", "error", err)
	switch {
	case errors.Is(err, game.ErrInvalidMove):
		return s.errorMessage(CodeInvalidMove, err.Error())
	case errors.Is(err, game.ErrInvalidTransition):
		return s.errorMessage(CodeInvalidTransition, err.Error())
	default:
		return s.errorMessage(CodeInvalidMessage, err.Error())
	}
}

func (s *Session) errorMessage(code, text string) *Message {
	return s.message(MessageTypeError, ErrorData{Code: code, Message: text})
}

func (s *Session) message(t MessageType, data any) *Message {
	msg, err := NewMessage(t, data, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to encode message", "type", t, "error", err)
		fallback, _ := NewMessage(MessageTypeError, ErrorData{Code: CodeInvalidMessage, Message: fmt.Sprintf("encode %s: %v", t, err)}, s.clock.Now())
		return fallback
	}
	return msg
}
