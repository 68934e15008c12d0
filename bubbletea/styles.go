package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mfm"
)

// Styles maps a Theme to lipgloss styles for the preview chrome.
type Styles struct {
	Muted  lipgloss.Style
	Accent lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t mfm.Theme) Styles {
	return Styles{
		Muted:  lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent: lipgloss.NewStyle().Foreground(ansiColor(t.Effect)).Bold(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
