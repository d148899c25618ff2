package ui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/planner"
	"github.com/arthur-debert/dotrig/pkg/style"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// RenderPlan renders the ordered step list for a host, marking the steps
// the profile gates out.
func RenderPlan(host types.HostProfile, steps []planner.Step) string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render(fmt.Sprintf("Plan for %s", host)))
	b.WriteString("\n")

	for i, step := range steps {
		line := fmt.Sprintf("%2d. %s", i+1, step.Name)
		if step.Applies != nil && !step.Applies(host) {
			b.WriteString(style.MutedStyle.Render(line + " (skipped: " + host.Profile.String() + ")"))
		} else {
			b.WriteString(style.NormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderStowResults renders the per-package outcomes of a reconcile batch.
func RenderStowResults(results []types.StowResult) string {
	var b strings.Builder
	for _, r := range results {
		var styled string
		switch r.Outcome {
		case types.StowLinked, types.StowConflictAdopted:
			styled = style.SuccessStyle.Render(r.Outcome.String())
		case types.StowConflictRefused, types.StowFailed:
			styled = style.ErrorStyle.Render(r.Outcome.String())
		default:
			styled = style.MutedStyle.Render(r.Outcome.String())
		}
		b.WriteString(fmt.Sprintf("%-16s %s\n", r.Package, styled))
		for _, c := range r.Conflicts {
			b.WriteString("    " + style.PathStyle.Render(c) + "\n")
		}
	}
	return b.String()
}

// StepLine renders one executed plan step for the console sink.
func StepLine(r planner.StepResult) string {
	if r.Detail != "" {
		return fmt.Sprintf("%s (%s)", r.Step, r.Detail)
	}
	return r.Step
}
