package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/roshambo/internal/display"
)

// Theme holds the colours for one look of the terminal shell.
type Theme struct {
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Positive lipgloss.Color
	Negative lipgloss.Color
	Warning  lipgloss.Color
	Border   lipgloss.Color
}

var themes = map[string]Theme{
	"default": {
		Accent:   "#7D56F4",
		Text:     "#FAFAFA",
		Muted:    "#626262",
		Positive: "#96CEB4",
		Negative: "#FF6B6B",
		Warning:  "#FFEAA7",
		Border:   "#04B575",
	},
	"dark": {
		Accent:   "#5A3FC0",
		Text:     "#E0E0E0",
		Muted:    "#4A4A4A",
		Positive: "#155724",
		Negative: "#721C24",
		Warning:  "#856404",
		Border:   "#3C3C3C",
	},
	"light": {
		Accent:   "#7D56F4",
		Text:     "#1A1A1A",
		Muted:    "#8A8A8A",
		Positive: "#155724",
		Negative: "#C0392B",
		Warning:  "#B7950B",
		Border:   "#7D56F4",
	},
}

// ThemeByName returns the named theme, falling back to "default".
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Header   lipgloss.Style
	Text     lipgloss.Style
	Info     lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Warning  lipgloss.Style
	Prompt   lipgloss.Style
	Pane     lipgloss.Style
	Focused  lipgloss.Style
}

func newStyles(t Theme) Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Accent).
			Padding(0, 1).
			Bold(true),
		Text:     lipgloss.NewStyle().Foreground(t.Text),
		Info:     lipgloss.NewStyle().Foreground(t.Muted),
		Positive: lipgloss.NewStyle().Foreground(t.Positive).Bold(true),
		Negative: lipgloss.NewStyle().Foreground(t.Negative).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Prompt:   lipgloss.NewStyle().Foreground(t.Border).Bold(true),
		Pane:     pane,
		Focused:  pane.BorderForeground(t.Border),
	}
}

// Render styles a display message according to its tone.
func (s Styles) Render(msg display.Message) string {
	switch msg.Tone {
	case display.Positive:
		return s.Positive.Render(msg.Text)
	case display.Negative:
		return s.Negative.Render(msg.Text)
	case display.Warning:
		return s.Warning.Render(msg.Text)
	default:
		return s.Text.Render(msg.Text)
	}
}
