package installer

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// buildToolchain is what a source build needs on Fedora beyond the
// compiler defaults.
var buildToolchain = []string{"git", "cmake", "make", "gcc-c++"}

// Dnf installs packages through dnf on Fedora. Mutating calls go through
// the privileged runner path; presence queries use rpm directly.
type Dnf struct {
	runner execute.Runner
	probe  *probe.Probe
	opts   Options
}

// NewDnf creates the dnf adapter.
func NewDnf(runner execute.Runner, pb *probe.Probe, opts Options) *Dnf {
	return &Dnf{runner: runner, probe: pb, opts: opts}
}

func (d *Dnf) Name() string {
	return "dnf"
}

// IsInstalled checks the binary on PATH, then the rpm database. Source
// builds install outside rpm, so the PATH check has to come first.
func (d *Dnf) IsInstalled(ctx context.Context, pkg types.Package) bool {
	if d.probe.CommandExists(pkg.Binary()) {
		return true
	}
	_, err := d.runner.Output(ctx, execute.NewCommand("rpm", "-q", pkg.Name))
	return err == nil
}

// Ensure installs the package, applying its declared fallback chain.
func (d *Dnf) Ensure(ctx context.Context, pkg types.Package) types.InstallResult {
	logger := logging.GetLogger("installer.dnf")

	if d.IsInstalled(ctx, pkg) {
		logger.Debug().Str("package", pkg.Name).Msg("Already present")
		return alreadyPresent(pkg)
	}

	var err error
	switch pkg.Method {
	case types.MethodNative, types.MethodCask:
		err = d.install(ctx, pkg.Name)
	case types.MethodRepoPlugin:
		err = d.installViaCopr(ctx, pkg)
	case types.MethodBuildSource:
		err = d.buildFromSource(ctx, pkg)
	case types.MethodTryFallback:
		err = d.installWithRepoFallback(ctx, pkg)
	}
	if err != nil {
		logger.Error().Err(err).Str("package", pkg.Name).Msg("Install failed")
		return failed(pkg, err)
	}

	logger.Info().Str("package", pkg.Name).Str("method", pkg.Method.String()).Msg("Installed")
	return installed(pkg)
}

func (d *Dnf) install(ctx context.Context, name string) error {
	err := d.runner.RunPrivileged(ctx, execute.NewCommand("dnf", "install", "-y", name))
	if err != nil {
		return errors.Wrapf(err, errors.ErrInstallFailed, "dnf install %s failed", name)
	}
	return nil
}

// installViaCopr enables the package's COPR channel first, then installs.
// Used for packages absent from the default repository set.
func (d *Dnf) installViaCopr(ctx context.Context, pkg types.Package) error {
	err := d.runner.RunPrivileged(ctx, execute.NewCommand("dnf", "copr", "enable", "-y", pkg.Channel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrRepoEnable,
			"failed to enable copr %s", pkg.Channel)
	}
	return d.install(ctx, pkg.Name)
}

// installWithRepoFallback tries the default install and, on failure, adds
// the package's upstream repo file and retries once.
func (d *Dnf) installWithRepoFallback(ctx context.Context, pkg types.Package) error {
	if err := d.install(ctx, pkg.Name); err == nil {
		return nil
	}

	logger := logging.GetLogger("installer.dnf")
	logger.Warn().
		Str("package", pkg.Name).
		Str("repo", pkg.Channel).
		Msg("Default install failed, enabling upstream repository")

	err := d.runner.RunPrivileged(ctx, execute.NewCommand(
		"dnf", "config-manager", "--add-repo", pkg.Channel))
	if err != nil {
		return errors.Wrapf(err, errors.ErrRepoEnable,
			"failed to add repo %s", pkg.Channel)
	}
	return d.install(ctx, pkg.Name)
}

// buildFromSource provisions the build toolchain, clones the pinned
// upstream ref, and installs into the configured prefix.
func (d *Dnf) buildFromSource(ctx context.Context, pkg types.Package) error {
	if d.opts.Git == nil {
		return errors.New(errors.ErrSourceBuild, "no cloner configured for source builds")
	}

	for _, tool := range buildToolchain {
		if err := d.install(ctx, tool); err != nil {
			return errors.Wrapf(err, errors.ErrSourceBuild,
				"toolchain package %s unavailable", tool)
		}
	}

	checkout := filepath.Join(d.opts.BuildDir, pkg.Name)
	if err := d.opts.Git.CloneRef(ctx, pkg.SourceRepo, pkg.SourceRef, checkout); err != nil {
		return errors.Wrapf(err, errors.ErrSourceBuild, "failed to fetch %s source", pkg.Name)
	}

	prefix := d.opts.NvimInstallPrefix
	build := execute.NewCommand("make", "-C", checkout,
		"CMAKE_BUILD_TYPE=Release", "CMAKE_INSTALL_PREFIX="+prefix)
	if err := d.runner.Run(ctx, build); err != nil {
		return errors.Wrapf(err, errors.ErrSourceBuild, "%s build failed", pkg.Name)
	}

	install := execute.NewCommand("make", "-C", checkout, "install")
	if err := d.runner.RunPrivileged(ctx, install); err != nil {
		return errors.Wrapf(err, errors.ErrSourceBuild, "%s install failed", pkg.Name)
	}
	return nil
}
