package planner

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/types"
)

// StepStatus classifies how a step ended.
type StepStatus int

const (
	// StatusOK: the step ran and its goal now holds (including the
	// already-satisfied case).
	StatusOK StepStatus = iota
	// StatusSkipped: the step's applicability predicate rejected this host.
	StatusSkipped
	// StatusWarned: the step failed but is not load-bearing; the plan
	// continues.
	StatusWarned
	// StatusFailed: the step failed and aborts the remainder of the plan.
	StatusFailed
)

func (s StepStatus) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusWarned:
		return "warned"
	case StatusFailed:
		return "failed"
	}
	return "ok"
}

// StepResult is the typed outcome of one plan step.
type StepResult struct {
	Step   string
	Status StepStatus
	// Detail is a short human-readable amendment ("already present").
	Detail string
	Err    error
}

// Step is one ordered action in the provisioning plan: an applicability
// predicate over the host profile plus an idempotent apply.
type Step struct {
	// Name describes the step for logs and plan rendering.
	Name string

	// Applies gates the step on the host profile; nil means always.
	Applies func(types.HostProfile) bool

	// Fatal marks the step load-bearing: a failure aborts the remaining
	// plan instead of degrading to a warning.
	Fatal bool

	run func(context.Context) StepResult
}

// desktopOnly is the applicability predicate for GUI-adjacent steps.
func desktopOnly(h types.HostProfile) bool {
	return h.Profile == types.ProfileDesktop
}
