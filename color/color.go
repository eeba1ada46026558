// Package color holds the terminal palette.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps an ANSI index or hex value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI 16-color palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiYellow = New("11")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Semantic colors used by the renderers.
var (
	Star     = New("#f9e2af")
	Score    = New("#a6e3a1")
	Decline  = New("#fab387")
	Failure  = New("#f38ba8")
	Faint    = New("#6c7086")
	Accent   = New("#cba6f7")
	Username = New("#89b4fa")
)
