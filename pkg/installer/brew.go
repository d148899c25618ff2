package installer

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Brew installs packages through Homebrew on macOS. Homebrew never runs
// privileged; it owns its own prefix.
type Brew struct {
	runner execute.Runner
	probe  *probe.Probe
}

// NewBrew creates the Homebrew adapter.
func NewBrew(runner execute.Runner, pb *probe.Probe) *Brew {
	return &Brew{runner: runner, probe: pb}
}

func (b *Brew) Name() string {
	return "brew"
}

// IsInstalled checks the binary on PATH first, then the brew database.
// The PATH check is what keeps Ensure idempotent for packages installed
// outside of brew.
func (b *Brew) IsInstalled(ctx context.Context, pkg types.Package) bool {
	if pkg.Method != types.MethodCask && b.probe.CommandExists(pkg.Binary()) {
		return true
	}
	args := []string{"list", "--versions", pkg.Name}
	if pkg.Method == types.MethodCask {
		args = []string{"list", "--cask", pkg.Name}
	}
	_, err := b.runner.Output(ctx, execute.NewCommand("brew", args...))
	return err == nil
}

// Ensure installs the package when absent.
func (b *Brew) Ensure(ctx context.Context, pkg types.Package) types.InstallResult {
	logger := logging.GetLogger("installer.brew")

	if b.IsInstalled(ctx, pkg) {
		logger.Debug().Str("package", pkg.Name).Msg("Already present")
		return alreadyPresent(pkg)
	}

	args := []string{"install", pkg.Name}
	if pkg.Method == types.MethodCask {
		args = []string{"install", "--cask", pkg.Name}
	}
	if err := b.runner.Run(ctx, execute.NewCommand("brew", args...)); err != nil {
		return failed(pkg, errors.Wrapf(err, errors.ErrInstallFailed,
			"brew install %s failed", pkg.Name))
	}

	logger.Info().Str("package", pkg.Name).Msg("Installed")
	return installed(pkg)
}
