// Package ui is the user-facing output layer. Components report through a
// Sink instead of printing; the console sink renders colored log-level
// prefixes with pterm, and tests substitute a recording sink.
//
// Warnings never change the exit status; errors do. That policy lives with
// the callers, the sink only renders.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/dotrig/pkg/style"
)

// Sink receives human-readable progress lines.
type Sink interface {
	Info(msg string)
	Success(msg string)
	Warn(msg string)
	Error(msg string)

	// DryRun renders a suppressed mutation in dry-run mode.
	DryRun(cmdline string)
}

// Console renders to the terminal via pterm.
type Console struct{}

// NewConsole creates the terminal sink.
func NewConsole() *Console {
	if !style.ColorEnabled() {
		pterm.DisableColor()
	}
	return &Console{}
}

func (c *Console) Info(msg string) {
	pterm.Info.Println(msg)
}

func (c *Console) Success(msg string) {
	pterm.Success.Println(msg)
}

func (c *Console) Warn(msg string) {
	pterm.Warning.Println(msg)
}

func (c *Console) Error(msg string) {
	pterm.Error.Println(msg)
}

func (c *Console) DryRun(cmdline string) {
	pterm.Printf("%s %s\n", pterm.Gray("[dry-run]"), cmdline)
}
