package types

import (
	"io/fs"
)

// FS abstracts filesystem operations so the stow reconciler and planner can
// run against a memory filesystem in tests.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error

	// Lstat may fall back to Stat on filesystems without symlink support.
	Lstat(name string) (fs.FileInfo, error)
}
