package vcs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/testutil"
)

func TestClone_RunsGit(t *testing.T) {
	runner := testutil.NewFakeRunner()
	g := New(runner, filesystem.NewMemory())

	err := g.Clone(context.Background(), "https://example.com/dotfiles.git", "/home/u/dotfiles")

	require.NoError(t, err)
	assert.Equal(t, []string{"git clone https://example.com/dotfiles.git /home/u/dotfiles"},
		runner.Commands)
}

func TestClone_IdempotentOnExistingRepo(t *testing.T) {
	runner := testutil.NewFakeRunner()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/u/dotfiles/.git", 0755))

	g := New(runner, fs)
	err := g.Clone(context.Background(), "https://example.com/dotfiles.git", "/home/u/dotfiles")

	require.NoError(t, err)
	assert.Empty(t, runner.Commands, "an existing repository must not be cloned over")
}

func TestClone_RefusesNonRepoDirectory(t *testing.T) {
	runner := testutil.NewFakeRunner()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/u/dotfiles", 0755))

	g := New(runner, fs)
	err := g.Clone(context.Background(), "https://example.com/dotfiles.git", "/home/u/dotfiles")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotGitRepo))
	assert.Empty(t, runner.Commands)
}

func TestCloneRef_ShallowPinnedClone(t *testing.T) {
	runner := testutil.NewFakeRunner()
	g := New(runner, filesystem.NewMemory())

	err := g.CloneRef(context.Background(),
		"https://github.com/neovim/neovim", "v0.10.4", "/var/tmp/dotrig/neovim")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"git clone --depth 1 --branch v0.10.4 https://github.com/neovim/neovim /var/tmp/dotrig/neovim",
	}, runner.Commands)
}

func TestClone_WrapsGitFailure(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("git clone https://example.com/x.git /tmp/x")
	g := New(runner, filesystem.NewMemory())

	err := g.Clone(context.Background(), "https://example.com/x.git", "/tmp/x")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
}
