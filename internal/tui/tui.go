package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
	"github.com/lox/roshambo/internal/rps"
)

const sidebarWidth = 24

// Model is the Bubble Tea model for a Rock-Paper-Scissors session. It owns
// the engine for the lifetime of the program; only Update touches it.
type Model struct {
	engine *game.Engine
	logger *log.Logger
	styles Styles

	logViewport viewport.Model
	input       textinput.Model

	gameLog []string
	round   display.Message
	banner  display.Message
	outcome display.Message

	width       int
	height      int
	quitting    bool
	initialized bool

	testMode    bool
	capturedLog []string
}

// Options configures a Model.
type Options struct {
	Theme    string
	TestMode bool
}

// NewModel creates a model driving engine.
func NewModel(engine *game.Engine, logger *log.Logger, opts Options) *Model {
	vp := viewport.New(10, 5)

	styles := newStyles(ThemeByName(opts.Theme))

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Text

	m := &Model{
		engine:      engine,
		logger:      logger.WithPrefix("tui"),
		styles:      styles,
		logViewport: vp,
		input:       ti,
		testMode:    opts.TestMode,
	}
	m.showRound(engine.RoundInfo())
	m.addLog(display.NewGame(engine.TotalRounds()))
	m.updatePlaceholder()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Window resized", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			command := m.input.Value()
			m.input.SetValue("")
			if m.Handle(command) {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyRunes:
			if handled, quit := m.hotkey(msg.Runes); handled {
				if quit {
					m.quitting = true
					return m, tea.Quit
				}
				return m, nil
			}
		case tea.KeyPgUp:
			m.logViewport.HalfPageUp()
			return m, nil
		case tea.KeyPgDown:
			m.logViewport.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// hotkey acts on a single key pressed with an empty input line: r, p or s
// throw while awaiting a move, n advances a resolved round, a starts the
// next match and q quits. Other keys are typed into the input.
func (m *Model) hotkey(runes []rune) (handled, quit bool) {
	if m.input.Value() != "" || len(runes) != 1 {
		return false, false
	}

	key := strings.ToLower(string(runes))
	switch {
	case key == "q":
		return true, true
	case m.engine.Phase() == game.AwaitingMove && strings.Contains("rps", key),
		m.engine.Phase() == game.RoundResolved && key == "n",
		m.engine.Phase() == game.MatchOver && key == "a":
		return true, m.Handle(key)
	}
	return false, false
}

// Handle runs one line of player input and reports whether the player asked
// to quit. Input is gated by the engine's phase: moves only while awaiting a
// move, "next" only after a resolved round, "again" only after the match.
func (m *Model) Handle(input string) (quit bool) {
	command := strings.ToLower(strings.TrimSpace(input))

	switch command {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		m.showHelp()
		return false
	}

	switch m.engine.Phase() {
	case game.AwaitingMove:
		if command == "" {
			m.addLog(display.Message{Text: "Choose rock, paper or scissors.", Tone: display.Warning})
			return false
		}
		move, err := rps.ParseMove(command)
		if err != nil {
			m.addLog(display.Message{Text: fmt.Sprintf("Unknown move %q. Choose rock, paper or scissors.", command), Tone: display.Negative})
			return false
		}
		m.submit(move)

	case game.RoundResolved:
		if command != "" && command != "n" && command != "next" {
			m.addLog(display.Message{Text: "Press Enter for the next round.", Tone: display.Warning})
			return false
		}
		m.advance()

	case game.MatchOver:
		if command != "" && command != "a" && command != "again" {
			m.addLog(display.Message{Text: "Press Enter to play again, or type quit.", Tone: display.Warning})
			return false
		}
		m.reset()
	}

	m.updatePlaceholder()
	return false
}

func (m *Model) submit(move rps.Move) {
	res, err := m.engine.SubmitMove(move)
	if err != nil {
		m.reportError(err)
		return
	}

	player, computer := display.Choices(res)
	m.addLog(player)
	m.addLog(computer)
	m.outcome = display.RoundOutcome(res)
	m.addLog(m.outcome)

	if res.Summary == nil {
		return
	}

	m.outcome = display.MatchResult(*res.Summary)
	m.banner = display.GameOverBanner(*res.Summary)
	m.addLog(m.outcome)
	pw, cw := display.OverallWins(res.Summary.PlayerWins, res.Summary.ComputerWins)
	m.addLog(pw)
	m.addLog(cw)
}

func (m *Model) advance() {
	info, err := m.engine.AdvanceRound()
	if err != nil {
		m.reportError(err)
		return
	}
	m.showRound(info)
	m.addLog(m.round)
}

func (m *Model) reset() {
	state := m.engine.ResetGame()
	m.outcome = display.Message{}
	m.showRound(m.engine.RoundInfo())
	m.addLog(display.NewGame(state.TotalRounds))
}

func (m *Model) reportError(err error) {
	m.logger.Warn("Engine rejected input", "error", err)
	text := err.Error()
	if errors.Is(err, game.ErrInvalidTransition) {
		text = "That is not allowed right now."
	}
	m.addLog(display.Message{Text: text, Tone: display.Negative})
}

func (m *Model) showRound(info game.RoundInfo) {
	m.round = display.RoundBanner(info)
	m.banner = display.RoundsRemaining(info)
}

func (m *Model) showHelp() {
	for _, line := range []string{
		"r, p or s to throw, or type the move and press Enter",
		"n or Enter to continue after a round",
		"a or Enter to start a new match",
		"PgUp/PgDn to scroll, q or Ctrl+C to leave",
	} {
		m.addLog(display.Message{Text: line})
	}
}

func (m *Model) updatePlaceholder() {
	switch m.engine.Phase() {
	case game.AwaitingMove:
		m.input.Placeholder = "r, p or s"
	case game.RoundResolved:
		m.input.Placeholder = "n or Enter for the next round"
	case game.MatchOver:
		m.input.Placeholder = "a to play again, q to quit"
	}
}

// addLog appends a message to the game log
func (m *Model) addLog(msg display.Message) {
	if m.testMode {
		m.capturedLog = append(m.capturedLog, msg.Text)
	}
	m.gameLog = append(m.gameLog, m.styles.Render(msg))
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.styles.Header.Render(" ✊ ✋ ✌  Rock Paper Scissors ")

	inputPane := m.styles.Focused.
		Width(max(m.width-2, 1)).
		Render(m.input.View() + "\n" + m.styles.Info.Render("Enter to submit • 'help' for commands • Ctrl+C to quit"))

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(inputPane)-2, 1)

	sidebar := m.styles.Pane.
		Width(sidebarWidth).
		Height(bodyHeight).
		Render(m.renderSidebar())

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = bodyHeight
	if !m.initialized && logWidth > 1 && bodyHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := m.styles.Pane.
		Width(logWidth).
		Height(bodyHeight).
		Render(m.logViewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, inputPane)
}

func (m *Model) renderSidebar() string {
	state := m.engine.State()
	var b strings.Builder

	b.WriteString(m.styles.Render(m.round))
	b.WriteString("\n")
	b.WriteString(m.styles.Render(m.banner))
	b.WriteString("\n\n")

	ps, cs := display.Scores(state.PlayerScore, state.ComputerScore)
	b.WriteString(m.styles.Render(ps))
	b.WriteString("\n")
	b.WriteString(m.styles.Render(cs))
	b.WriteString("\n\n")

	pw, cw := display.OverallWins(state.PlayerWins, state.ComputerWins)
	b.WriteString(m.styles.Info.Render(pw.Text))
	b.WriteString("\n")
	b.WriteString(m.styles.Info.Render(cw.Text))

	if m.outcome.Text != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Render(m.outcome))
	}
	return b.String()
}

// CapturedLog returns the plain text of every log line (test mode only).
func (m *Model) CapturedLog() []string {
	if !m.testMode {
		return nil
	}
	out := make([]string, len(m.capturedLog))
	copy(out, m.capturedLog)
	return out
}

// Banner returns the current rounds-remaining banner.
func (m *Model) Banner() display.Message {
	return m.banner
}
