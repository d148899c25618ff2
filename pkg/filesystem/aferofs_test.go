package filesystem

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SymlinkRoundTrip(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.WriteFile("/src", []byte("content"), 0644))
	require.NoError(t, m.Symlink("/src", "/link"))

	info, err := m.Lstat("/link")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink,
		"Lstat must identify a simulated symlink")

	target, err := m.Readlink("/link")
	require.NoError(t, err)
	assert.Equal(t, "/src", target)
}

func TestMemory_RegularFileIsNotASymlink(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.WriteFile("/plain", []byte("x"), 0644))

	info, err := m.Lstat("/plain")
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&fs.ModeSymlink)

	_, err = m.Readlink("/plain")
	assert.Error(t, err, "Readlink on a regular file must fail")
}

func TestMemory_RemoveForgetsSymlink(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.WriteFile("/src", []byte("x"), 0644))
	require.NoError(t, m.Symlink("/src", "/link"))
	require.NoError(t, m.Remove("/link"))

	// recreating the path as a regular file must not revive link status
	require.NoError(t, m.WriteFile("/link", []byte("y"), 0644))
	info, err := m.Lstat("/link")
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&fs.ModeSymlink)
}

func TestMemory_RenameCarriesSymlink(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.WriteFile("/src", []byte("x"), 0644))
	require.NoError(t, m.Symlink("/src", "/old"))
	require.NoError(t, m.Rename("/old", "/new"))

	info, err := m.Lstat("/new")
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	target, err := m.Readlink("/new")
	require.NoError(t, err)
	assert.Equal(t, "/src", target)

	_, err = m.Readlink("/old")
	assert.Error(t, err)
}
