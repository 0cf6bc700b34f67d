package game

import (
	"fmt"

	"github.com/lox/roshambo/internal/rps"
)

// DefaultTotalRounds is the match length when none is configured.
const DefaultTotalRounds = 5

// Phase is the engine's position in the per-round state machine.
type Phase int

const (
	AwaitingMove Phase = iota
	RoundResolved
	MatchOver
)

func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "awaiting_move"
	case RoundResolved:
		return "round_resolved"
	case MatchOver:
		return "match_over"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{AwaitingMove, RoundResolved, MatchOver} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// MatchState is a snapshot of everything the engine tracks.
//
// Round is 1-indexed and moves to TotalRounds+1 once the match is over.
// PlayerWins and ComputerWins count matches won this session and survive
// ResetGame.
type MatchState struct {
	MatchID       string `json:"match_id"`
	Round         int    `json:"round"`
	TotalRounds   int    `json:"total_rounds"`
	PlayerScore   int    `json:"player_score"`
	ComputerScore int    `json:"computer_score"`
	PlayerWins    int    `json:"player_wins"`
	ComputerWins  int    `json:"computer_wins"`
	Phase         Phase  `json:"phase"`
}

// RoundResult describes a resolved round.
type RoundResult struct {
	Round         int         `json:"round"`
	PlayerMove    rps.Move    `json:"player_move"`
	ComputerMove  rps.Move    `json:"computer_move"`
	Outcome       rps.Outcome `json:"outcome"`
	PlayerScore   int         `json:"player_score"`
	ComputerScore int         `json:"computer_score"`

	// Summary is set only when this round finished the match.
	Summary *MatchSummary `json:"summary,omitempty"`
}

// RoundInfo describes the round that is about to be played.
type RoundInfo struct {
	Round       int  `json:"round"`
	TotalRounds int  `json:"total_rounds"`
	Remaining   int  `json:"remaining"`
	IsLastRound bool `json:"is_last_round"`
}

// MatchSummary is produced when the final round resolves.
type MatchSummary struct {
	MatchID       string   `json:"match_id"`
	Winner        rps.Side `json:"winner"`
	PlayerScore   int      `json:"player_score"`
	ComputerScore int      `json:"computer_score"`
	PlayerWins    int      `json:"player_wins"`
	ComputerWins  int      `json:"computer_wins"`
}

// IsTie reports whether neither side took the match.
func (s MatchSummary) IsTie() bool {
	return s.Winner == rps.Nobody
}

func newRoundInfo(round, total int) RoundInfo {
	remaining := total - round + 1
	return RoundInfo{
		Round:       round,
		TotalRounds: total,
		Remaining:   remaining,
		IsLastRound: remaining == 1,
	}
}
