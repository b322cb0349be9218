// Package goldmark renders tutor replies for the terminal: the model's
// markdown is parsed with goldmark and styled with lipgloss, and plot
// payloads are printed as a points table.
package goldmark

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Theme maps reply elements to ANSI color indices (0-15) so output follows
// the terminal's own palette. A negative index disables the color.
type Theme struct {
	Accent int // Headings, plot title
	Math   int // Inline $...$ formulas
	Muted  int // Code gutters, URLs, quotes
	Error  int // Error messages
}

// DefaultTheme returns the default color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent: 5,
		Math:   6,
		Muted:  8,
		Error:  1,
	}
}

func color(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

// RenderError styles a user-facing error line.
func RenderError(msg string, theme Theme) string {
	return lipgloss.NewStyle().Foreground(color(theme.Error)).Bold(true).Render(msg)
}
