package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/planner"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/ui"
)

// newUpCmd is the orchestrator: bootstrap, dotfiles acquisition, stow.
func newUpCmd(flags func() flagOverrides) *cobra.Command {
	var (
		all           bool
		apps          string
		skipBootstrap bool
		skipStow      bool
	)

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Bootstrap the machine and reconcile dotfiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(flags())
			if err != nil {
				return err
			}
			if !rc.host.Supported() {
				rc.sink.Error(MsgErrUnsupported)
				return errors.New(errors.ErrUnsupportedOS, MsgErrUnsupported)
			}
			rc.sink.Info("Host: " + rc.host.String())

			if !skipBootstrap {
				if err := runBootstrap(cmd.Context(), rc); err != nil {
					return err
				}
			}

			if err := ensureDotfiles(cmd.Context(), rc); err != nil {
				return err
			}

			if skipStow {
				return nil
			}

			packages, err := selectPackages(rc, all, apps)
			if err != nil {
				return err
			}
			return runStow(rc, packages)
		},
	}

	cmd.Flags().BoolVar(&all, "all", true, MsgFlagAll)
	cmd.Flags().StringVar(&apps, "apps", "", MsgFlagApps)
	cmd.Flags().BoolVar(&skipBootstrap, "skip-bootstrap", false, MsgFlagSkipBootstrap)
	cmd.Flags().BoolVar(&skipStow, "skip-stow", false, MsgFlagSkipStow)

	return cmd
}

// runBootstrap executes the provisioning plan, rendering each step result
// as it lands.
func runBootstrap(ctx context.Context, rc *runContext) error {
	inst, err := rc.newInstaller()
	if err != nil {
		return err
	}

	pl := rc.newPlanner(inst)
	steps := pl.Plan(rc.host)

	_, err = pl.Execute(ctx, rc.host, steps, func(r planner.StepResult) {
		switch r.Status {
		case planner.StatusOK:
			rc.sink.Success(ui.StepLine(r))
		case planner.StatusSkipped:
			rc.sink.Info(ui.StepLine(r))
		case planner.StatusWarned:
			rc.sink.Warn(r.Step + ": " + r.Err.Error())
		case planner.StatusFailed:
			rc.sink.Error(r.Step + ": " + r.Err.Error())
		}
	})
	return err
}

// ensureDotfiles makes sure the dotfiles root exists, cloning it from the
// configured repository when missing.
func ensureDotfiles(ctx context.Context, rc *runContext) error {
	root := rc.paths.DotfilesRoot()

	if probe.DirExists(rc.fs, root) {
		if !rc.git.IsRepo(root) {
			return errors.Newf(errors.ErrNotGitRepo,
				"%s exists but is not a git repository", root)
		}
		return nil
	}

	url := rc.cfg.Settings.DotfilesRepoURL
	if url == "" {
		return errors.Newf(errors.ErrConfigValid, MsgErrNoDotfiles, root)
	}
	if !rc.probe.CommandExists("git") {
		return errors.New(errors.ErrToolMissing, MsgErrGitMissing)
	}
	return rc.git.Clone(ctx, url, root)
}

// selectPackages resolves the --all/--apps flags into package names.
func selectPackages(rc *runContext, all bool, apps string) ([]string, error) {
	if apps != "" {
		return strings.Fields(apps), nil
	}
	if !all {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNothingToStow)
	}

	entries, err := rc.fs.ReadDir(rc.paths.DotfilesRoot())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read dotfiles root")
	}

	var packages []string
	for _, entry := range entries {
		// Hidden directories (.git and friends) are not packages.
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			packages = append(packages, entry.Name())
		}
	}
	return packages, nil
}

// runStow reconciles the packages and renders the batch outcome. The
// aggregate error carries the nonzero exit when any package failed.
func runStow(rc *runContext, packages []string) error {
	results, err := rc.newReconciler().Reconcile(packages)
	rc.sink.Info("Stow results:")
	for _, line := range strings.Split(strings.TrimRight(ui.RenderStowResults(results), "\n"), "\n") {
		rc.sink.Info(line)
	}
	return err
}
