package rps

import "fmt"

// Outcome is the result of a single round from the player's point of view.
type Outcome int

const (
	Draw Outcome = iota
	PlayerWin
	ComputerWin
)

func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player"
	case ComputerWin:
		return "computer"
	default:
		return "draw"
	}
}

// DetermineOutcome applies the beats relation to a pair of moves.
func DetermineOutcome(player, computer Move) Outcome {
	switch {
	case player == computer:
		return Draw
	case player.Beats(computer):
		return PlayerWin
	default:
		return ComputerWin
	}
}

// Side identifies who took a match.
type Side int

const (
	Nobody Side = iota
	Player
	Computer
)

func (s Side) String() string {
	switch s {
	case Player:
		return "player"
	case Computer:
		return "computer"
	default:
		return "tie"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "draw":
		*o = Draw
	case "player":
		*o = PlayerWin
	case "computer":
		*o = ComputerWin
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "tie":
		*s = Nobody
	case "player":
		*s = Player
	case "computer":
		*s = Computer
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}
