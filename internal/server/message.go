package server

import (
	"encoding/json"
	"time"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
)

// MessageType identifies a WebSocket message
type MessageType string

const (
	// Client → Server
	MessageTypeMove  MessageType = "move"
	MessageTypeNext  MessageType = "next"
	MessageTypeReset MessageType = "reset"
	MessageTypeState MessageType = "state"

	// Server → Client
	MessageTypeSnapshot    MessageType = "snapshot"
	MessageTypeRoundResult MessageType = "round_result"
	MessageTypeRoundInfo   MessageType = "round_info"
	MessageTypeNewMatch    MessageType = "new_match"
	MessageTypeError       MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	msg := &Message{Type: messageType, Timestamp: now}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return msg, nil
}

// Client → Server

// MoveData carries the player's throw as a name or shorthand.
type MoveData struct {
	Move string `json:"move"`
}

// Server → Client

// Elements maps an element of the page (by its DOM id) to the text it should
// show. Only elements that change are included.
type Elements map[string]display.Message

// Element ids understood by the bundled page.
const (
	ElementPlayerChoice    = "player-choice"
	ElementComputerChoice  = "computer-choice"
	ElementResult          = "result"
	ElementPlayerScore     = "player-score"
	ElementComputerScore   = "computer-score"
	ElementRoundInfo       = "round-info"
	ElementRoundsRemaining = "rounds-remaining"
	ElementPlayerWins      = "player-overall-wins"
	ElementComputerWins    = "computer-overall-wins"
)

// Controls tells the page which inputs to enable.
type Controls struct {
	Choices   bool `json:"choices"`
	NextRound bool `json:"next_round"`
	PlayAgain bool `json:"play_again"`
}

// SnapshotData is sent on connect and on request, and as new_match after a
// reset.
type SnapshotData struct {
	State    game.MatchState `json:"state"`
	Round    game.RoundInfo  `json:"round"`
	Elements Elements        `json:"elements"`
	Controls Controls        `json:"controls"`
}

// RoundResultData is sent after every accepted move.
type RoundResultData struct {
	Result   game.RoundResult `json:"result"`
	Elements Elements         `json:"elements"`
	Controls Controls         `json:"controls"`
}

// RoundInfoData is sent when the next round opens.
type RoundInfoData struct {
	Round    game.RoundInfo `json:"round"`
	Elements Elements       `json:"elements"`
	Controls Controls       `json:"controls"`
}

// ErrorData reports a rejected request. The session state is unchanged.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
