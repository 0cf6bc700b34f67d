package server

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestSession(t *testing.T, rounds int, script ...rps.Move) (*Session, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC))

	source, err := game.NewScriptedMoveSource(script...)
	require.NoError(t, err)
	engine, err := game.NewEngine(
		game.WithTotalRounds(rounds),
		game.WithMoveSource(source),
		game.WithClock(clock),
		game.WithLogger(testLogger()),
	)
	require.NoError(t, err)
	return NewSession(engine, clock, testLogger()), clock
}

func request(t *testing.T, mt MessageType, data any) *Message {
	t.Helper()
	msg, err := NewMessage(mt, data, time.Time{})
	require.NoError(t, err)
	return msg
}

func decode[T any](t *testing.T, msg *Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Data, &out))
	return out
}

func TestSessionMove(t *testing.T) {
	s, clock := newTestSession(t, 3, rps.Scissors)

	reply := s.Handle(request(t, MessageTypeMove, MoveData{Move: "rock"}))
	require.Equal(t, MessageTypeRoundResult, reply.Type)
	assert.Equal(t, clock.Now(), reply.Timestamp)

	data := decode[RoundResultData](t, reply)
	assert.Equal(t, rps.Rock, data.Result.PlayerMove)
	assert.Equal(t, rps.Scissors, data.Result.ComputerMove)
	assert.Equal(t, rps.PlayerWin, data.Result.Outcome)
	assert.Nil(t, data.Result.Summary)
	assert.Equal(t, Controls{NextRound: true}, data.Controls)

	assert.Equal(t, "Player chose: rock", data.Elements[ElementPlayerChoice].Text)
	assert.Equal(t, "Computer chose: scissors", data.Elements[ElementComputerChoice].Text)
	assert.Equal(t, display.Message{Text: "You win! rock beats scissors.", Tone: display.Positive}, data.Elements[ElementResult])
	assert.Equal(t, "Player Score: 1", data.Elements[ElementPlayerScore].Text)
}

func TestSessionFullMatch(t *testing.T) {
	s, _ := newTestSession(t, 2, rps.Paper)

	reply := s.Handle(request(t, MessageTypeMove, MoveData{Move: "r"}))
	require.Equal(t, MessageTypeRoundResult, reply.Type)

	reply = s.Handle(request(t, MessageTypeNext, nil))
	require.Equal(t, MessageTypeRoundInfo, reply.Type)
	info := decode[RoundInfoData](t, reply)
	assert.True(t, info.Round.IsLastRound)
	assert.Equal(t, display.Message{Text: "Last Round!", Tone: display.Warning}, info.Elements[ElementRoundsRemaining])
	assert.Equal(t, "Round: 2", info.Elements[ElementRoundInfo].Text)
	assert.Equal(t, Controls{Choices: true}, info.Controls)

	reply = s.Handle(request(t, MessageTypeMove, MoveData{Move: "rock"}))
	final := decode[RoundResultData](t, reply)
	require.NotNil(t, final.Result.Summary)
	assert.Equal(t, rps.Computer, final.Result.Summary.Winner)
	assert.Equal(t, "Game over! The computer wins with a score of 2 to 0.", final.Elements[ElementResult].Text)
	assert.Equal(t, display.Message{Text: "Game Over!", Tone: display.Negative}, final.Elements[ElementRoundsRemaining])
	assert.Equal(t, "Computer Wins: 1", final.Elements[ElementComputerWins].Text)
	assert.Equal(t, Controls{PlayAgain: true}, final.Controls)

	reply = s.Handle(request(t, MessageTypeState, nil))
	require.Equal(t, MessageTypeSnapshot, reply.Type)
	over := decode[SnapshotData](t, reply)
	assert.Equal(t, display.Message{Text: "Game Over!", Tone: display.Negative}, over.Elements[ElementRoundsRemaining])
	assert.Equal(t, final.Elements[ElementResult], over.Elements[ElementResult])
	assert.Equal(t, Controls{PlayAgain: true}, over.Controls)

	reply = s.Handle(request(t, MessageTypeReset, nil))
	require.Equal(t, MessageTypeNewMatch, reply.Type)
	snap := decode[SnapshotData](t, reply)
	assert.Equal(t, 1, snap.State.Round)
	assert.Equal(t, 1, snap.State.ComputerWins)
	assert.Equal(t, game.AwaitingMove, snap.State.Phase)
	assert.Equal(t, "New game! First to 2 rounds wins.", snap.Elements[ElementResult].Text)
	assert.Equal(t, "Rounds Remaining: 2", snap.Elements[ElementRoundsRemaining].Text)
	assert.Equal(t, Controls{Choices: true}, snap.Controls)
	assert.Equal(t, display.Message{}, snap.Elements[ElementPlayerChoice])
	assert.Equal(t, display.Message{}, snap.Elements[ElementComputerChoice])
}

func TestSessionErrorsLeaveStateUnchanged(t *testing.T) {
	s, _ := newTestSession(t, 2, rps.Rock)
	before := s.Engine().State()

	tests := []struct {
		name string
		msg  *Message
		code string
	}{
		{"next before move", request(t, MessageTypeNext, nil), CodeInvalidTransition},
		{"bad move", request(t, MessageTypeMove, MoveData{Move: "lizard"}), CodeInvalidMove},
		{"malformed data", &Message{Type: MessageTypeMove, Data: json.RawMessage(`"rock"`)}, CodeInvalidMessage},
		{"unknown type", request(t, MessageType("shuffle"), nil), CodeUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := s.Handle(tt.msg)
			require.Equal(t, MessageTypeError, reply.Type)
			assert.Equal(t, tt.code, decode[ErrorData](t, reply).Code)
			assert.Equal(t, before, s.Engine().State())
		})
	}
}

func TestSessionMoveAfterMatchOver(t *testing.T) {
	s, _ := newTestSession(t, 1, rps.Rock)
	s.Handle(request(t, MessageTypeMove, MoveData{Move: "paper"}))
	before := s.Engine().State()
	require.Equal(t, game.MatchOver, before.Phase)

	reply := s.Handle(request(t, MessageTypeMove, MoveData{Move: "paper"}))
	require.Equal(t, MessageTypeError, reply.Type)
	assert.Equal(t, CodeInvalidTransition, decode[ErrorData](t, reply).Code)
	assert.Equal(t, before, s.Engine().State())

	reply = s.Handle(request(t, MessageTypeState, nil))
	snap := decode[SnapshotData](t, reply)
	assert.Equal(t, Controls{PlayAgain: true}, snap.Controls)
	assert.Equal(t, display.Message{Text: "Game Over!", Tone: display.Positive}, snap.Elements[ElementRoundsRemaining])
	assert.Equal(t, "Game over! You win with a score of 1 to 0.", snap.Elements[ElementResult].Text)
}
