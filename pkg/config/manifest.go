package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// Manifest is the declarative side of dotrig: which packages each OS gets,
// through which install method, and which command gates each dotfile
// package during stow reconciliation.
type Manifest struct {
	stow     map[string]string
	packages map[string][]types.Package
}

type manifestPackage struct {
	Name        string `toml:"name"`
	Command     string `toml:"command"`
	Method      string `toml:"method"`
	Channel     string `toml:"channel"`
	SourceRepo  string `toml:"source_repo"`
	SourceRef   string `toml:"source_ref"`
	DesktopOnly bool   `toml:"desktop_only"`
}

type manifestFile struct {
	// Settings is parsed by the koanf loader, not here.
	Settings map[string]interface{}       `toml:"settings"`
	Stow     map[string]string            `toml:"stow"`
	Packages map[string][]manifestPackage `toml:"packages"`
}

// parseManifest decodes the embedded manifest TOML.
func parseManifest(data []byte) (*Manifest, error) {
	var file manifestFile
	if err := gotoml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid manifest")
	}

	m := &Manifest{
		stow:     file.Stow,
		packages: make(map[string][]types.Package, len(file.Packages)),
	}

	for osName, pkgs := range file.Packages {
		list := make([]types.Package, 0, len(pkgs))
		for _, p := range pkgs {
			method, ok := types.ParseInstallMethod(p.Method)
			if !ok {
				return nil, errors.Newf(errors.ErrConfigValid,
					"package %s: unknown install method %q", p.Name, p.Method)
			}
			list = append(list, types.Package{
				Name:        p.Name,
				Command:     p.Command,
				Method:      method,
				Channel:     p.Channel,
				SourceRepo:  p.SourceRepo,
				SourceRef:   p.SourceRef,
				DesktopOnly: p.DesktopOnly,
			})
		}
		m.packages[osName] = list
	}

	return m, nil
}

// PackagesFor returns the declared package list for an OS, in manifest
// order. Unknown OSes get an empty list.
func (m *Manifest) PackagesFor(os types.OSID) []types.Package {
	return m.packages[os.String()]
}

// StowCommand returns the command that must exist for the named dotfile
// package to be stowed. The second return value is false for unmapped
// packages, which are always eligible.
func (m *Manifest) StowCommand(pkg string) (string, bool) {
	cmd, ok := m.stow[pkg]
	return cmd, ok
}
