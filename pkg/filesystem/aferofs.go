package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"

	"github.com/arthur-debert/dotrig/pkg/types"
)

// aferoFS implements types.FS using afero. afero's MemMapFs has no symlink
// support, so simulated symlinks are tracked in a side map: Symlink records
// the target there, and Lstat/Readlink answer from it.
type aferoFS struct {
	fs    afero.Fs
	links map[string]string
}

// NewAferoFS wraps an afero filesystem as a types.FS
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs, links: make(map[string]string)}
}

// NewMemory creates an in-memory types.FS for tests
func NewMemory() types.FS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	delete(a.links, name)
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

// Symlink simulates a symlink: the target is written as file content so the
// entry exists on the underlying filesystem, and recorded in the link map
// so Lstat and Readlink can identify it.
func (a *aferoFS) Symlink(oldname, newname string) error {
	if err := afero.WriteFile(a.fs, newname, []byte(oldname), 0644); err != nil {
		return err
	}
	a.links[newname] = oldname
	return nil
}

func (a *aferoFS) Readlink(name string) (string, error) {
	target, ok := a.links[name]
	if !ok {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
	}
	return target, nil
}

func (a *aferoFS) Remove(name string) error {
	if err := a.fs.Remove(name); err != nil {
		return err
	}
	delete(a.links, name)
	return nil
}

func (a *aferoFS) Rename(oldpath, newpath string) error {
	if err := a.fs.Rename(oldpath, newpath); err != nil {
		return err
	}
	if target, ok := a.links[oldpath]; ok {
		delete(a.links, oldpath)
		a.links[newpath] = target
	} else {
		delete(a.links, newpath)
	}
	return nil
}

// Lstat reports simulated symlinks with the symlink mode bit set; anything
// else falls through to Stat.
func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if _, ok := a.links[name]; ok {
		return linkFileInfo{info}, nil
	}
	return info, nil
}

// linkFileInfo overlays the symlink mode bit on a regular FileInfo.
type linkFileInfo struct {
	fs.FileInfo
}

func (l linkFileInfo) Mode() fs.FileMode {
	return l.FileInfo.Mode() | fs.ModeSymlink
}
