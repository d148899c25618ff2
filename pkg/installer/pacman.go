package installer

import (
	"context"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Pacman installs packages through pacman on Arch. Everything dotrig needs
// is in the default repositories, so there are no fallback chains here.
type Pacman struct {
	runner execute.Runner
	probe  *probe.Probe
}

// NewPacman creates the pacman adapter.
func NewPacman(runner execute.Runner, pb *probe.Probe) *Pacman {
	return &Pacman{runner: runner, probe: pb}
}

func (p *Pacman) Name() string {
	return "pacman"
}

// IsInstalled checks the binary on PATH, then the pacman database.
func (p *Pacman) IsInstalled(ctx context.Context, pkg types.Package) bool {
	if p.probe.CommandExists(pkg.Binary()) {
		return true
	}
	_, err := p.runner.Output(ctx, execute.NewCommand("pacman", "-Qi", pkg.Name))
	return err == nil
}

// Ensure installs the package when absent.
func (p *Pacman) Ensure(ctx context.Context, pkg types.Package) types.InstallResult {
	logger := logging.GetLogger("installer.pacman")

	if p.IsInstalled(ctx, pkg) {
		logger.Debug().Str("package", pkg.Name).Msg("Already present")
		return alreadyPresent(pkg)
	}

	cmd := execute.NewCommand("pacman", "-S", "--noconfirm", "--needed", pkg.Name)
	if err := p.runner.RunPrivileged(ctx, cmd); err != nil {
		return failed(pkg, errors.Wrapf(err, errors.ErrInstallFailed,
			"pacman -S %s failed", pkg.Name))
	}

	logger.Info().Str("package", pkg.Name).Msg("Installed")
	return installed(pkg)
}
