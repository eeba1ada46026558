// Package style provides small rendering functions over lipgloss.
package style

import (
	"github.com/animecritique/critique/color"
	"github.com/charmbracelet/lipgloss"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a renderer applying the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a section heading.
var Title = func(s string) string {
	return New().Bold(true).Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1).Render(s)
}
