// Package paths provides centralized path handling for dotrig.
// It implements XDG Base Directory compliance and resolves the well-known
// locations the provisioner writes to: the dotfiles root, tool clone
// targets, and dotrig's own data and log files.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/dotrig/pkg/errors"
)

// Default directories and files
const (
	// DefaultDotfilesDir is the default directory name for dotfiles,
	// relative to the home directory
	DefaultDotfilesDir = "dotfiles"

	// RigDirName is the directory name for dotrig-specific files
	RigDirName = "dotrig"

	// ConfigFileName is the base name of the user config file
	ConfigFileName = "dotrig"

	// LogFileName is the name of the log file
	LogFileName = "dotrig.log"

	// TpmDir is the tmux plugin manager clone target, relative to home
	TpmDir = ".tmux/plugins/tpm"
)

// Paths resolves the well-known filesystem locations for a run.
type Paths struct {
	home         string
	dotfilesRoot string
	usedFallback bool
}

// New creates a Paths instance. dotfilesRoot comes from the resolved
// configuration (which owns all environment lookups); empty means the
// ~/dotfiles fallback.
func New(dotfilesRoot string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine home directory")
	}

	p := &Paths{home: home}

	if dotfilesRoot != "" {
		p.dotfilesRoot = ExpandHome(dotfilesRoot)
	} else {
		p.dotfilesRoot = filepath.Join(home, DefaultDotfilesDir)
		p.usedFallback = true
	}

	return p, nil
}

// Home returns the home directory, the stow target for all packages.
func (p *Paths) Home() string {
	return p.home
}

// DotfilesRoot returns the root directory holding the dotfile packages.
func (p *Paths) DotfilesRoot() string {
	return p.dotfilesRoot
}

// UsedFallback reports whether the dotfiles root came from the ~/dotfiles
// fallback rather than an explicit setting.
func (p *Paths) UsedFallback() bool {
	return p.usedFallback
}

// PackagePath returns the source directory for a named dotfile package.
func (p *Paths) PackagePath(name string) string {
	return filepath.Join(p.dotfilesRoot, name)
}

// ConfigDir returns the XDG config directory for dotrig.
func (p *Paths) ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, RigDirName)
}

// DataDir returns the XDG data directory for dotrig.
func (p *Paths) DataDir() string {
	return filepath.Join(xdg.DataHome, RigDirName)
}

// StateDir returns the XDG state directory for dotrig.
func (p *Paths) StateDir() string {
	return filepath.Join(xdg.StateHome, RigDirName)
}

// LogFilePath returns the log file location under the state directory.
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.StateDir(), LogFileName)
}

// TpmPath returns the clone target for the tmux plugin manager.
func (p *Paths) TpmPath() string {
	return filepath.Join(p.home, TpmDir)
}

// ZshrcPath returns the canonical location of the zsh rc file.
func (p *Paths) ZshrcPath() string {
	return filepath.Join(p.home, ".zshrc")
}

// ExpandHome expands a leading ~ or ~/ in a path to the home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
