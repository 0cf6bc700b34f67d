// Package display turns engine results into the messages a player sees.
//
// Shells (terminal, browser) share these strings so every front end reads
// the same. Each message carries a Tone that a shell maps to its own colours.
package display

import (
	"fmt"

	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

// Tone hints how a message should be emphasised.
type Tone int

const (
	Neutral Tone = iota
	Positive
	Negative
	Warning
)

func (t Tone) String() string {
	switch t {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Warning:
		return "warning"
	default:
		return "neutral"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tone) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tone) UnmarshalText(text []byte) error {
	for _, candidate := range []Tone{Neutral, Positive, Negative, Warning} {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown tone %q", text)
}

// Message is a line of text and its tone.
type Message struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

func neutral(format string, args ...any) Message {
	return Message{Text: fmt.Sprintf(format, args...), Tone: Neutral}
}

// Choices returns the "Player chose" and "Computer chose" lines.
func Choices(res game.RoundResult) (player, computer Message) {
	return neutral("Player chose: %s", res.PlayerMove), neutral("Computer chose: %s", res.ComputerMove)
}

// RoundOutcome describes who took the round and why.
func RoundOutcome(res game.RoundResult) Message {
	switch res.Outcome {
	case rps.PlayerWin:
		return Message{Text: fmt.Sprintf("You win! %s beats %s.", res.PlayerMove, res.ComputerMove), Tone: Positive}
	case rps.ComputerWin:
		return Message{Text: fmt.Sprintf("You lose! %s beats %s.", res.ComputerMove, res.PlayerMove), Tone: Negative}
	default:
		return neutral("It's a draw! Both chose %s.", res.PlayerMove)
	}
}

// Scores returns the two score lines.
func Scores(playerScore, computerScore int) (player, computer Message) {
	return neutral("Player Score: %d", playerScore), neutral("Computer Score: %d", computerScore)
}

// RoundBanner returns the round number line.
func RoundBanner(info game.RoundInfo) Message {
	return neutral("Round: %d", info.Round)
}

// RoundsRemaining returns the remaining count, or a warning on the last round.
func RoundsRemaining(info game.RoundInfo) Message {
	if info.IsLastRound {
		return Message{Text: "Last Round!", Tone: Warning}
	}
	return neutral("Rounds Remaining: %d", info.Remaining)
}

// MatchResult is the game over line for a finished match.
func MatchResult(s game.MatchSummary) Message {
	switch s.Winner {
	case rps.Player:
		return Message{
			Text: fmt.Sprintf("Game over! You win with a score of %d to %d.", s.PlayerScore, s.ComputerScore),
			Tone: Positive,
		}
	case rps.Computer:
		return Message{
			Text: fmt.Sprintf("Game over! The computer wins with a score of %d to %d.", s.ComputerScore, s.PlayerScore),
			Tone: Negative,
		}
	default:
		return Message{
			Text: fmt.Sprintf("Game over! It's a tie with a score of %d to %d.", s.PlayerScore, s.ComputerScore),
			Tone: Warning,
		}
	}
}

// GameOverBanner replaces the rounds remaining line once the match ends. It
// takes the tone of the match result.
func GameOverBanner(s game.MatchSummary) Message {
	return Message{Text: "Game Over!", Tone: MatchResult(s).Tone}
}

// OverallWins returns the session tallies.
func OverallWins(playerWins, computerWins int) (player, computer Message) {
	return neutral("Player Wins: %d", playerWins), neutral("Computer Wins: %d", computerWins)
}

// NewGame is shown after a reset.
func NewGame(totalRounds int) Message {
	return neutral("New game! First to %d rounds wins.", totalRounds)
}
