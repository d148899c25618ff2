// Package vcs wraps the git operations dotrig needs: cloning the dotfiles
// collection and tool repositories into fixed well-known paths. Git is an
// opaque collaborator; anything beyond clone/identify is out of scope.
package vcs

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Git runs git through the command runner.
type Git struct {
	runner execute.Runner
	fs     types.FS
}

// New creates a Git wrapper.
func New(runner execute.Runner, fs types.FS) *Git {
	return &Git{runner: runner, fs: fs}
}

// IsRepo reports whether path looks like a git work tree.
func (g *Git) IsRepo(path string) bool {
	return probe.DirExists(g.fs, filepath.Join(path, ".git"))
}

// Clone clones url into target. Idempotent: an existing git repository at
// target is left alone. An existing non-repository directory is an error;
// dotrig refuses to guess what to do with it.
func (g *Git) Clone(ctx context.Context, url, target string) error {
	logger := logging.GetLogger("vcs")

	if probe.DirExists(g.fs, target) {
		if g.IsRepo(target) {
			logger.Debug().Str("target", target).Msg("Repository already cloned")
			return nil
		}
		return errors.Newf(errors.ErrNotGitRepo,
			"%s exists but is not a git repository", target)
	}

	err := g.runner.Run(ctx, execute.NewCommand("git", "clone", url, target))
	if err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "failed to clone %s", url)
	}
	logger.Info().Str("url", url).Str("target", target).Msg("Cloned repository")
	return nil
}

// CloneRef clones a single pinned ref of url into target, shallow.
func (g *Git) CloneRef(ctx context.Context, url, ref, target string) error {
	if probe.DirExists(g.fs, target) && g.IsRepo(target) {
		return nil
	}
	err := g.runner.Run(ctx, execute.NewCommand(
		"git", "clone", "--depth", "1", "--branch", ref, url, target))
	if err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "failed to clone %s@%s", url, ref)
	}
	return nil
}
