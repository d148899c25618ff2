package config

import (
	_ "embed"
)

// defaultManifest is the built-in manifest: default settings, the stow
// detection table, and the per-OS package lists.
//
//go:embed dotrig.toml
var defaultManifest []byte
