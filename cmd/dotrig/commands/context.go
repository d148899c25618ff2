package commands

import (
	"github.com/arthur-debert/dotrig/pkg/config"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/installer"
	"github.com/arthur-debert/dotrig/pkg/paths"
	"github.com/arthur-debert/dotrig/pkg/planner"
	"github.com/arthur-debert/dotrig/pkg/platform"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/shells"
	"github.com/arthur-debert/dotrig/pkg/stow"
	"github.com/arthur-debert/dotrig/pkg/types"
	"github.com/arthur-debert/dotrig/pkg/ui"
	"github.com/arthur-debert/dotrig/pkg/vcs"
)

// runContext wires the components for one invocation. Everything is built
// exactly once, from the immutable config.
type runContext struct {
	cfg    *config.Config
	host   types.HostProfile
	paths  *paths.Paths
	fs     types.FS
	probe  *probe.Probe
	runner execute.Runner
	git    *vcs.Git
	sink   ui.Sink
}

// flagOverrides carries the global flag values into config resolution.
type flagOverrides struct {
	dryRun bool
	force  bool
}

func newRunContext(flags flagOverrides) (*runContext, error) {
	fs := filesystem.NewOS()
	pb := probe.New()
	sink := ui.NewConsole()

	// A first paths pass only to locate the config dir; the real one is
	// rebuilt below once the dotfiles root setting is known.
	bootstrapPaths, err := paths.New("")
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if flags.dryRun {
		overrides["settings.dry_run"] = true
	}
	if flags.force {
		overrides["settings.force_stow"] = true
	}

	cfg, err := config.Load(bootstrapPaths.ConfigDir(), overrides)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(cfg.Settings.DotfilesRoot)
	if err != nil {
		return nil, err
	}

	runner := execute.NewRunner(cfg.Settings.DryRun, sink.DryRun)
	detector := platform.NewDetector(platform.Options{FS: fs})

	return &runContext{
		cfg:    cfg,
		host:   detector.Detect(cfg.Settings.Profile),
		paths:  p,
		fs:     fs,
		probe:  pb,
		runner: runner,
		git:    vcs.New(runner, fs),
		sink:   sink,
	}, nil
}

// newInstaller builds the installer adapter for the detected OS.
func (rc *runContext) newInstaller() (installer.Installer, error) {
	return installer.New(rc.host, rc.runner, rc.probe, installer.Options{
		NvimInstallPrefix: rc.cfg.Settings.NvimInstallPrefix,
		Git:               rc.git,
		BuildDir:          rc.paths.DataDir() + "/build",
	})
}

// newPlanner builds the provisioning planner.
func (rc *runContext) newPlanner(inst installer.Installer) *planner.Planner {
	return planner.New(planner.Options{
		Manifest:  rc.cfg.Manifest,
		Installer: inst,
		Shells:    shells.New(rc.runner, rc.fs),
		Git:       rc.git,
		Probe:     rc.probe,
		TpmPath:   rc.paths.TpmPath(),
	})
}

// newReconciler builds the stow reconciler.
func (rc *runContext) newReconciler() *stow.Reconciler {
	return stow.New(stow.Options{
		FS:       rc.fs,
		Probe:    rc.probe,
		Detect:   rc.cfg.Manifest,
		Root:     rc.paths.DotfilesRoot(),
		Target:   rc.paths.Home(),
		Force:    rc.cfg.Settings.ForceStow,
		Restow:   rc.cfg.Settings.Restow,
		DryRun:   rc.cfg.Settings.DryRun,
		OnDryRun: rc.sink.DryRun,
	})
}
