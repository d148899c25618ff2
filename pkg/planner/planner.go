// Package planner builds and executes the ordered provisioning plan for a
// host profile. The plan is an ordered sequence of steps (package ensures,
// shell registration, repository clones), each gated by an applicability
// predicate and independently idempotent.
//
// Ordering is significant: shell provisioning (zsh install, /etc/shells
// registration, default-shell change) comes before the remaining tool
// installs, so a refused shell change cannot block them.
package planner

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/config"
	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/installer"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/shells"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/arthur-debert/dotrig/pkg/vcs"
)

// TpmRepoURL is the upstream of the tmux plugin manager.
const TpmRepoURL = "https://github.com/tmux-plugins/tpm"

// Planner assembles plans from the manifest and the host profile.
type Planner struct {
	manifest *config.Manifest
	inst     installer.Installer
	shells   *shells.Manager
	git      *vcs.Git
	probe    *probe.Probe

	// tpmPath is the fixed clone target for the tmux plugin manager.
	tpmPath string
}

// Options wires the Planner's collaborators.
type Options struct {
	Manifest  *config.Manifest
	Installer installer.Installer
	Shells    *shells.Manager
	Git       *vcs.Git
	Probe     *probe.Probe
	TpmPath   string
}

// New creates a Planner.
func New(opts Options) *Planner {
	return &Planner{
		manifest: opts.Manifest,
		inst:     opts.Installer,
		shells:   opts.Shells,
		git:      opts.Git,
		probe:    opts.Probe,
		tpmPath:  opts.TpmPath,
	}
}

// Plan returns the ordered step sequence for the host.
func (p *Planner) Plan(host types.HostProfile) []Step {
	var steps []Step

	packages := p.manifest.PackagesFor(host.OS)

	// Shell provisioning first: install zsh, register it, make it the
	// default. Tool installs follow regardless of how the shell change
	// went.
	for _, pkg := range packages {
		if pkg.Name == "zsh" {
			steps = append(steps, p.ensureStep(pkg))
		}
	}
	steps = append(steps,
		Step{
			Name: "register zsh in /etc/shells",
			run:  p.registerShell,
		},
		Step{
			Name: "set zsh as default shell",
			run:  p.changeShell,
		},
	)

	for _, pkg := range packages {
		if pkg.Name == "zsh" {
			continue
		}
		steps = append(steps, p.ensureStep(pkg))
	}

	steps = append(steps, Step{
		Name: "clone tmux plugin manager",
		run:  p.cloneTpm,
	})

	return steps
}

// Execute runs the plan in order. Each step result is handed to report as
// it happens. Fatal step failures abort the remainder; everything else
// degrades to a warning and the plan continues.
func (p *Planner) Execute(ctx context.Context, host types.HostProfile, steps []Step, report func(StepResult)) ([]StepResult, error) {
	logger := logging.GetLogger("planner")

	results := make([]StepResult, 0, len(steps))
	emit := func(r StepResult) {
		results = append(results, r)
		if report != nil {
			report(r)
		}
	}

	for i, step := range steps {
		if step.Applies != nil && !step.Applies(host) {
			emit(StepResult{Step: step.Name, Status: StatusSkipped, Detail: "not applicable to " + host.Profile.String()})
			continue
		}

		result := step.run(ctx)
		result.Step = step.Name

		if result.Status == StatusFailed && !step.Fatal {
			result.Status = StatusWarned
		}
		emit(result)

		logger.Debug().
			Str("step", step.Name).
			Str("status", result.Status.String()).
			Msg("Step finished")

		if result.Status == StatusFailed {
			// Mark what never ran; callers render the abort.
			for _, rest := range steps[i+1:] {
				emit(StepResult{Step: rest.Name, Status: StatusSkipped, Detail: "plan aborted"})
			}
			return results, errors.Wrapf(result.Err, errors.ErrPlanAborted,
				"plan aborted at step %q", step.Name)
		}
	}
	return results, nil
}

// ensureStep wraps an installer ensure call as a plan step. Package
// installs are load-bearing: a failure aborts the plan.
func (p *Planner) ensureStep(pkg types.Package) Step {
	step := Step{
		Name:  "install " + pkg.Name,
		Fatal: true,
		run: func(ctx context.Context) StepResult {
			result := p.inst.Ensure(ctx, pkg)
			if result.Failed() {
				return StepResult{Status: StatusFailed, Err: result.Err}
			}
			return StepResult{Status: StatusOK, Detail: result.Outcome.String()}
		},
	}
	if pkg.DesktopOnly {
		step.Applies = desktopOnly
	}
	return step
}

func (p *Planner) registerShell(ctx context.Context) StepResult {
	path, err := p.probe.CommandPath("zsh")
	if err != nil {
		return StepResult{Status: StatusFailed,
			Err: errors.Wrap(err, errors.ErrToolMissing, "zsh not on PATH")}
	}
	if err := p.shells.Register(ctx, path); err != nil {
		return StepResult{Status: StatusFailed, Err: err}
	}
	return StepResult{Status: StatusOK}
}

func (p *Planner) changeShell(ctx context.Context) StepResult {
	path, err := p.probe.CommandPath("zsh")
	if err != nil {
		return StepResult{Status: StatusFailed,
			Err: errors.Wrap(err, errors.ErrToolMissing, "zsh not on PATH")}
	}
	if err := p.shells.ChangeDefault(ctx, path); err != nil {
		return StepResult{Status: StatusFailed, Err: err}
	}
	return StepResult{Status: StatusOK}
}

func (p *Planner) cloneTpm(ctx context.Context) StepResult {
	if err := p.git.Clone(ctx, TpmRepoURL, p.tpmPath); err != nil {
		return StepResult{Status: StatusFailed, Err: err}
	}
	return StepResult{Status: StatusOK}
}
