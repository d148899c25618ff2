// Package probe answers "is X present?" for commands, files, and
// directories. Pure read-only queries against the host; package-database
// presence checks live with the installer adapters.
package probe

import (
	"os"
	"os/exec"

	"github.com/arthur-debert/dotrig/pkg/types"
)

// Probe performs capability checks. The lookup function is injectable so
// tests can fake command presence.
type Probe struct {
	lookPath func(string) (string, error)
}

// New creates a Probe against the real host.
func New() *Probe {
	return &Probe{lookPath: exec.LookPath}
}

// NewWithLookup creates a Probe with a custom command lookup (tests).
func NewWithLookup(lookPath func(string) (string, error)) *Probe {
	return &Probe{lookPath: lookPath}
}

// CommandExists reports whether a command resolves on PATH.
func (p *Probe) CommandExists(name string) bool {
	_, err := p.lookPath(name)
	return err == nil
}

// CommandPath resolves a command to its absolute path.
func (p *Probe) CommandPath(name string) (string, error) {
	return p.lookPath(name)
}

// FileExists reports whether path exists and is not a directory.
func FileExists(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists reports whether path exists and is a directory.
func DirExists(fs types.FS, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// IsSymlink reports whether path is a symbolic link.
func IsSymlink(fs types.FS, path string) bool {
	info, err := fs.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
