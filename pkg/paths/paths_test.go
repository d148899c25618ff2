package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExplicitRootWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New("/srv/dotfiles")
	require.NoError(t, err)

	assert.Equal(t, "/srv/dotfiles", p.DotfilesRoot())
	assert.False(t, p.UsedFallback())
}

func TestNew_FallsBackToHomeDotfiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "dotfiles"), p.DotfilesRoot())
	assert.True(t, p.UsedFallback())
}

func TestNew_IgnoresAmbientDotfilesRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DOTFILES_ROOT", "/somewhere/else")

	// env resolution belongs to the config layer; paths only sees the
	// already-resolved value it is handed
	p, err := New("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "dotfiles"), p.DotfilesRoot())

	p, err = New("/explicit")
	require.NoError(t, err)
	assert.Equal(t, "/explicit", p.DotfilesRoot())
}

func TestNew_ExpandsTildeRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New("~/cfg")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cfg"), p.DotfilesRoot())
}

func TestWellKnownPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := New("")
	require.NoError(t, err)

	assert.Equal(t, home, p.Home())
	assert.Equal(t, filepath.Join(p.DotfilesRoot(), "nvim"), p.PackagePath("nvim"))
	assert.Equal(t, filepath.Join(home, ".tmux/plugins/tpm"), p.TpmPath())
	assert.Equal(t, filepath.Join(home, ".zshrc"), p.ZshrcPath())
}
