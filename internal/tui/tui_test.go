package tui

import (
	"io"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, rounds int, script ...rps.Move) (*Model, *game.Engine) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	source, err := game.NewScriptedMoveSource(script...)
	require.NoError(t, err)
	engine, err := game.NewEngine(
		game.WithTotalRounds(rounds),
		game.WithMoveSource(source),
		game.WithLogger(logger),
	)
	require.NoError(t, err)
	return NewModel(engine, logger, Options{TestMode: true}), engine
}

func TestModelPlaysFullMatch(t *testing.T) {
	m, engine := newTestModel(t, 2, rps.Scissors, rps.Rock)

	assert.False(t, m.Handle("rock"))
	assert.Equal(t, game.RoundResolved, engine.Phase())

	assert.False(t, m.Handle(""))
	assert.Equal(t, game.AwaitingMove, engine.Phase())
	assert.Equal(t, display.Message{Text: "Last Round!", Tone: display.Warning}, m.Banner())

	assert.False(t, m.Handle("r"))
	assert.Equal(t, game.MatchOver, engine.Phase())
	assert.Equal(t, "Game Over!", m.Banner().Text)

	assert.Equal(t, []string{
		"New game! First to 2 rounds wins.",
		"Player chose: rock",
		"Computer chose: scissors",
		"You win! rock beats scissors.",
		"Round: 2",
		"Player chose: rock",
		"Computer chose: rock",
		"It's a draw! Both chose rock.",
		"Game over! You win with a score of 1 to 0.",
		"Player Wins: 1",
		"Computer Wins: 0",
	}, m.CapturedLog())

	assert.False(t, m.Handle("again"))
	assert.Equal(t, game.AwaitingMove, engine.Phase())
	assert.Equal(t, 1, engine.State().PlayerWins)
	assert.Equal(t, "Rounds Remaining: 2", m.Banner().Text)
}

func TestModelGatesInputByPhase(t *testing.T) {
	m, engine := newTestModel(t, 3, rps.Paper)

	t.Run("blank input while awaiting a move", func(t *testing.T) {
		m.Handle("")
		assert.Equal(t, game.AwaitingMove, engine.Phase())
	})

	t.Run("unknown move is rejected", func(t *testing.T) {
		m.Handle("lizard")
		assert.Equal(t, game.AwaitingMove, engine.Phase())
		log := m.CapturedLog()
		assert.Contains(t, log[len(log)-1], "Unknown move")
	})

	t.Run("moves are ignored after a resolved round", func(t *testing.T) {
		m.Handle("paper")
		require.Equal(t, game.RoundResolved, engine.Phase())
		before := engine.State()

		m.Handle("rock")
		assert.Equal(t, before, engine.State())
	})
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, 3, rps.Rock)
	assert.True(t, m.Handle("quit"))
	assert.True(t, m.Handle(" Q "))
}

func TestModelUpdateKeys(t *testing.T) {
	m, engine := newTestModel(t, 2, rps.Rock)
	press := func(r rune) tea.Cmd {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		return cmd
	}

	t.Run("hotkeys act immediately", func(t *testing.T) {
		assert.Nil(t, press('p'))
		assert.Equal(t, game.RoundResolved, engine.Phase())
		assert.Equal(t, 1, engine.State().PlayerScore)
		assert.Empty(t, m.input.Value())

		press('s')
		assert.Equal(t, game.RoundResolved, engine.Phase(), "moves are not hotkeys after a resolved round")
		m.input.SetValue("")

		press('n')
		assert.Equal(t, game.AwaitingMove, engine.Phase())
		press('r')
		assert.Equal(t, game.MatchOver, engine.Phase())
		press('a')
		assert.Equal(t, game.AwaitingMove, engine.Phase())
		assert.Equal(t, 1, engine.State().PlayerWins)
	})

	t.Run("typed commands still go through Enter", func(t *testing.T) {
		for _, r := range "help" {
			press(r)
		}
		assert.Equal(t, "help", m.input.Value())
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Empty(t, m.input.Value())
		assert.Equal(t, game.AwaitingMove, engine.Phase())
	})

	t.Run("quit keys", func(t *testing.T) {
		cmd := press('q')
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())

		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	})
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, 5, rps.Rock)
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Rock Paper Scissors")
	assert.Contains(t, view, "Round: 1")
	assert.Contains(t, view, "Rounds Remaining: 5")
	assert.Contains(t, view, "Player Score: 0")
	assert.Contains(t, view, "Computer Wins: 0")
}

func TestCapturedLogOnlyInTestMode(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	engine, err := game.NewEngine(game.WithLogger(logger))
	require.NoError(t, err)

	m := NewModel(engine, logger, Options{})
	m.Handle("rock")
	assert.Nil(t, m.CapturedLog())
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, themes["dark"], ThemeByName("dark"))
	assert.Equal(t, themes["default"], ThemeByName("unknown"))
}
