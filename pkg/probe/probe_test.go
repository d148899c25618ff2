package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/probe"
	"github.com/arthur-debert/dotrig/pkg/testutil"
)

func TestCommandExists(t *testing.T) {
	pb := testutil.FakeProbe("git", "zsh")

	assert.True(t, pb.CommandExists("git"))
	assert.False(t, pb.CommandExists("lazygit"))
}

func TestCommandPath(t *testing.T) {
	pb := testutil.FakeProbe("zsh")

	path, err := pb.CommandPath("zsh")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh", path)

	_, err = pb.CommandPath("fish")
	assert.Error(t, err)
}

func TestFileAndDirExists(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/home/u/dotfiles", 0755))
	require.NoError(t, fs.WriteFile("/home/u/.zshrc", []byte("x"), 0644))

	assert.True(t, probe.DirExists(fs, "/home/u/dotfiles"))
	assert.False(t, probe.DirExists(fs, "/home/u/.zshrc"), "a file is not a directory")
	assert.True(t, probe.FileExists(fs, "/home/u/.zshrc"))
	assert.False(t, probe.FileExists(fs, "/home/u/dotfiles"), "a directory is not a file")
	assert.False(t, probe.FileExists(fs, "/home/u/missing"))
}

func TestIsSymlink(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/src", []byte("x"), 0644))
	require.NoError(t, fs.Symlink("/src", "/link"))

	assert.True(t, probe.IsSymlink(fs, "/link"))
	assert.False(t, probe.IsSymlink(fs, "/src"))
	assert.False(t, probe.IsSymlink(fs, "/missing"))
}
