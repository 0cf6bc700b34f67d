package rps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutcome(t *testing.T) {
	tests := []struct {
		player   Move
		computer Move
		want     Outcome
	}{
		{Rock, Rock, Draw},
		{Rock, Paper, ComputerWin},
		{Rock, Scissors, PlayerWin},
		{Paper, Rock, PlayerWin},
		{Paper, Paper, Draw},
		{Paper, Scissors, ComputerWin},
		{Scissors, Rock, ComputerWin},
		{Scissors, Paper, PlayerWin},
		{Scissors, Scissors, Draw},
	}

	for _, tt := range tests {
		t.Run(tt.player.String()+"_vs_"+tt.computer.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineOutcome(tt.player, tt.computer))
		})
	}
}

func TestBeatsIsAntisymmetric(t *testing.T) {
	for _, a := range Moves() {
		assert.False(t, a.Beats(a), "%s must not beat itself", a)
		for _, b := range Moves() {
			if a.Beats(b) {
				assert.False(t, b.Beats(a), "%s beats %s and %s beats %s", a, b, b, a)
				assert.Equal(t, PlayerWin, DetermineOutcome(a, b))
				assert.Equal(t, ComputerWin, DetermineOutcome(b, a))
			}
		}
	}
}

func TestEachMoveBeatsExactlyOne(t *testing.T) {
	for _, a := range Moves() {
		wins := 0
		for _, b := range Moves() {
			if a.Beats(b) {
				wins++
			}
		}
		assert.Equal(t, 1, wins, "%s", a)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"rock", Rock},
		{"Paper", Paper},
		{"  SCISSORS ", Scissors},
		{"r", Rock},
		{"p", Paper},
		{"s", Scissors},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	for _, bad := range []string{"", "lizard", "spock", "rocks"} {
		_, err := ParseMove(bad)
		assert.ErrorIs(t, err, ErrInvalidMove, bad)
	}
}

func TestMoveValid(t *testing.T) {
	for _, m := range Moves() {
		assert.True(t, m.Valid())
	}
	assert.False(t, Move(0).Valid())
	assert.False(t, Move(4).Valid())
	assert.Equal(t, "move(7)", Move(7).String())
}

func TestMoveJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Move Move `json:"move"`
	}{Scissors})
	require.NoError(t, err)
	assert.JSONEq(t, `{"move":"scissors"}`, string(data))

	var decoded struct {
		Move Move `json:"move"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"move":"paper"}`), &decoded))
	assert.Equal(t, Paper, decoded.Move)

	err = json.Unmarshal([]byte(`{"move":"lizard"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidMove)
}
