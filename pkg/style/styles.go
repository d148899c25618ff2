// Package style centralizes the lipgloss styles used for plan and status
// rendering.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Colors, kept muted; dotrig output is mostly read in a hurry.
var (
	HeadingColor = lipgloss.Color("12")
	TextColor    = lipgloss.Color("7")
	MutedColor   = lipgloss.Color("8")
	SuccessColor = lipgloss.Color("10")
	WarningColor = lipgloss.Color("11")
	ErrorColor   = lipgloss.Color("9")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// ColorEnabled reports whether the terminal supports color output at all.
func ColorEnabled() bool {
	return termenv.ColorProfile() != termenv.Ascii
}
