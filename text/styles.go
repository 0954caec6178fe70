package text

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/bikeshare"
)

// Styles maps a Theme to lipgloss styles for terminal rendering.
type Styles struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

// NewStyles creates Styles from a Theme. A negative color index yields an
// unstyled element.
func NewStyles(t bikeshare.Theme) Styles {
	return Styles{
		Heading: style(t.Heading).Bold(t.Heading >= 0),
		Label:   style(t.Label),
		Value:   style(t.Value),
		Warning: style(t.Warning),
		Error:   style(t.Error).Bold(t.Error >= 0),
		Muted:   style(t.Muted).Faint(t.Muted >= 0),
		Accent:  style(t.Accent).Bold(t.Accent >= 0),
	}
}

func style(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ansiColor(index))
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
