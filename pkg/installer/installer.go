// Package installer provides the per-OS package installer adapters. Each
// adapter satisfies the same contract: Ensure is idempotent (a satisfied
// package reports already-present with no mutation) and a single package
// failure never aborts the adapter: callers decide whether the package is
// load-bearing.
package installer

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Installer ensures packages are present using the OS-appropriate
// mechanism.
type Installer interface {
	// Name identifies the underlying package manager.
	Name() string

	// IsInstalled queries for presence without mutating anything.
	IsInstalled(ctx context.Context, pkg types.Package) bool

	// Ensure makes the package present, applying the package's fallback
	// chain when the primary path fails.
	Ensure(ctx context.Context, pkg types.Package) types.InstallResult
}

// New returns the installer adapter for the detected OS.
func New(host types.HostProfile, runner execute.Runner, pb *probe.Probe, opts Options) (Installer, error) {
	switch host.OS {
	case types.OSMacOS:
		return NewBrew(runner, pb), nil
	case types.OSFedora:
		return NewDnf(runner, pb, opts), nil
	case types.OSArch:
		return NewPacman(runner, pb), nil
	case types.OSUnknown:
		return nil, errors.New(errors.ErrUnsupportedOS, "unsupported platform")
	}
	return nil, errors.New(errors.ErrUnsupportedOS, "unsupported platform")
}

// Options carries the installer knobs that come from configuration.
type Options struct {
	// NvimInstallPrefix is the install prefix for source builds of neovim.
	NvimInstallPrefix string

	// Git performs source clones for build-from-source packages. Optional;
	// only build-source packages need it.
	Git Cloner

	// BuildDir is where build-from-source checkouts land.
	BuildDir string
}

// Cloner is the subset of vcs.Git the installer needs.
type Cloner interface {
	CloneRef(ctx context.Context, url, ref, target string) error
}

// alreadyPresent is the shared already-satisfied result.
func alreadyPresent(pkg types.Package) types.InstallResult {
	return types.InstallResult{Package: pkg.Name, Outcome: types.OutcomeAlreadyPresent}
}

func installed(pkg types.Package) types.InstallResult {
	return types.InstallResult{Package: pkg.Name, Outcome: types.OutcomeInstalled}
}

func failed(pkg types.Package, err error) types.InstallResult {
	return types.InstallResult{Package: pkg.Name, Outcome: types.OutcomeFailed, Err: err}
}
