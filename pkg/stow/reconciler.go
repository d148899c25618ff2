// Package stow reconciles dotfile packages into the home directory by
// symlink farming: every top-level entry of a package directory is linked
// into the target. The reconciler is conflict-safe (a trial run classifies
// every link before anything mutates) and batch-independent (one package's
// conflict never stops the others).
package stow

import (
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// DetectTable maps a package name to the command that must be present for
// the package to be eligible. Unmapped packages are always eligible, which
// is the escape hatch for new packages not yet wired into the table.
type DetectTable interface {
	StowCommand(pkg string) (string, bool)
}

// Options configures a Reconciler.
type Options struct {
	FS     types.FS
	Probe  *probe.Probe
	Detect DetectTable

	// Root is the dotfiles root holding the named package directories.
	Root string

	// Target is the directory links land in, normally the home directory.
	Target string

	// Force enables adopt mode on conflicts.
	Force bool

	// Restow recreates links that are already correct.
	Restow bool

	// DryRun reports what would happen without touching the filesystem.
	DryRun bool

	// OnDryRun receives a line per suppressed mutation in dry-run mode.
	OnDryRun func(line string)
}

// Reconciler links dotfile packages into the target directory.
type Reconciler struct {
	fs     types.FS
	probe  *probe.Probe
	detect DetectTable
	root   string
	target string
	force  bool
	restow bool
	dryRun bool
	onDry  func(string)
}

// New creates a Reconciler.
func New(opts Options) *Reconciler {
	return &Reconciler{
		fs:     opts.FS,
		probe:  opts.Probe,
		detect: opts.Detect,
		root:   opts.Root,
		target: opts.Target,
		force:  opts.Force,
		restow: opts.Restow,
		dryRun: opts.DryRun,
		onDry:  opts.OnDryRun,
	}
}

// Reconcile processes every named package independently and returns the
// per-package results plus an aggregate error covering the packages that
// failed or were refused. All N packages are attempted regardless of
// earlier failures.
func (r *Reconciler) Reconcile(packages []string) ([]types.StowResult, error) {
	logger := logging.GetLogger("stow")

	results := make([]types.StowResult, 0, len(packages))
	var batchErr *multierror.Error

	for _, name := range packages {
		result := r.reconcileOne(name)
		results = append(results, result)

		logger.Info().
			Str("package", name).
			Str("outcome", result.Outcome.String()).
			Msg("Package reconciled")

		if !result.Outcome.Succeeded() {
			err := result.Err
			if err == nil {
				err = errors.Newf(errors.ErrStowConflict,
					"package %s: %s", name, result.Outcome)
			}
			batchErr = multierror.Append(batchErr, err)
		}
	}

	if batchErr != nil {
		return results, errors.Wrap(batchErr.ErrorOrNil(), errors.ErrStowBatch,
			"some packages could not be stowed")
	}
	return results, nil
}

// reconcileOne runs the decision ladder for a single package.
func (r *Reconciler) reconcileOne(name string) types.StowResult {
	pkgDir := filepath.Join(r.root, name)

	if !probe.DirExists(r.fs, pkgDir) {
		return types.StowResult{Package: name, Outcome: types.StowSkippedMissingSource}
	}

	if cmd, mapped := r.detect.StowCommand(name); mapped {
		if !r.probe.CommandExists(cmd) {
			return types.StowResult{Package: name, Outcome: types.StowSkippedNotInstalled}
		}
	}

	links, err := r.trial(pkgDir, r.target)
	if err != nil {
		return types.StowResult{Package: name, Outcome: types.StowFailed,
			Err: errors.Wrapf(err, errors.ErrFileAccess, "cannot read package %s", name)}
	}

	conflicting := conflicts(links)
	if len(conflicting) > 0 && !r.force {
		return types.StowResult{
			Package:   name,
			Outcome:   types.StowConflictRefused,
			Conflicts: conflicting,
			Err: errors.Newf(errors.ErrStowConflict,
				"package %s conflicts with %d existing path(s)", name, len(conflicting)),
		}
	}

	if err := r.apply(links); err != nil {
		return types.StowResult{Package: name, Outcome: types.StowFailed, Err: err}
	}

	if name == "zsh" {
		if err := r.linkZshrc(pkgDir); err != nil {
			return types.StowResult{Package: name, Outcome: types.StowFailed, Err: err}
		}
	}

	outcome := types.StowLinked
	if len(conflicting) > 0 {
		outcome = types.StowConflictAdopted
	}
	return types.StowResult{Package: name, Outcome: outcome, Conflicts: conflicting}
}

// apply executes the plan. Conflicting entries only reach this point in
// force mode, where adopt absorbs the existing real file into the package
// source before linking. Destructive on purpose.
func (r *Reconciler) apply(links []plannedLink) error {
	for _, link := range links {
		switch link.state {
		case linkCorrect:
			if !r.restow {
				continue
			}
			if r.dryRun {
				r.emitDry("restow " + link.target)
				continue
			}
			if err := r.fs.Remove(link.target); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate,
					"failed to remove stale link %s", link.target)
			}

		case linkConflict:
			if r.dryRun {
				r.emitDry("adopt " + link.target)
				continue
			}
			if err := r.fs.Rename(link.target, link.source); err != nil {
				return errors.Wrapf(err, errors.ErrFileAccess,
					"failed to adopt %s", link.target)
			}

		case linkNeeded:
			if r.dryRun {
				r.emitDry("link " + link.target + " -> " + link.source)
				continue
			}
		}

		if err := r.fs.Symlink(link.source, link.target); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate,
				"failed to link %s", link.target)
		}
	}
	return nil
}

// linkZshrc creates the convenience link ~/.zshrc -> <pkg>/.zshrc, only
// when the package carries an rc file and the canonical location is free.
func (r *Reconciler) linkZshrc(pkgDir string) error {
	rc := filepath.Join(pkgDir, ".zshrc")
	if !probe.FileExists(r.fs, rc) {
		return nil
	}

	target := filepath.Join(r.target, ".zshrc")
	if _, err := r.fs.Lstat(target); err == nil {
		return nil
	}

	if r.dryRun {
		r.emitDry("link " + target + " -> " + rc)
		return nil
	}
	if err := r.fs.Symlink(rc, target); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "failed to link .zshrc")
	}
	return nil
}

func (r *Reconciler) emitDry(line string) {
	if r.onDry != nil {
		r.onDry(line)
	}
}
