// Package config builds dotrig's immutable run configuration. Settings are
// resolved once at startup and passed into every component; nothing reads
// the environment after this.
//
// The resolution order is: embedded defaults, then the user config file
// ($XDG_CONFIG_HOME/dotrig/dotrig.toml or .yaml), then environment
// variables. An optional .env file in the working directory is loaded
// before environment resolution.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
)

// Recognized environment variables. These are the documented surface; any
// other variable is ignored.
var envKeys = map[string]string{
	"PROFILE":             "settings.profile",
	"DRY_RUN":             "settings.dry_run",
	"FORCE_STOW":          "settings.force_stow",
	"RESTOW":              "settings.restow",
	"DOTFILES_REPO_URL":   "settings.dotfiles_repo_url",
	"DOTFILES_ROOT":       "settings.dotfiles_root",
	"NVIM_INSTALL_PREFIX": "settings.nvim_install_prefix",
}

// Settings are the user-tunable knobs for a run.
type Settings struct {
	// Profile overrides automatic profile detection: auto, desktop, server.
	Profile string `koanf:"profile"`

	// DryRun gates every mutating action behind a print-only mode.
	DryRun bool `koanf:"dry_run"`

	// ForceStow enables adopt mode on stow conflicts.
	ForceStow bool `koanf:"force_stow"`

	// Restow relinks packages whose links already exist.
	Restow bool `koanf:"restow"`

	// DotfilesRepoURL is cloned into the dotfiles root when absent.
	DotfilesRepoURL string `koanf:"dotfiles_repo_url"`

	// DotfilesRoot overrides the dotfiles location (default ~/dotfiles).
	DotfilesRoot string `koanf:"dotfiles_root"`

	// NvimInstallPrefix is the install prefix for the neovim source build.
	NvimInstallPrefix string `koanf:"nvim_install_prefix"`
}

// Config is the immutable configuration for a run: resolved settings plus
// the declarative manifest.
type Config struct {
	Settings Settings
	Manifest *Manifest
}

// Load builds the Config. configDir is searched for a user config file;
// pass "" to skip file loading (tests). overrides hold command-line flag
// values, which win over everything else.
func Load(configDir string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")

	// Optional .env for local overrides. Missing file is the normal case.
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded .env file")
	}

	k := koanf.New(".")

	if err := k.Load(rawBytes(defaultManifest), ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	if configDir != "" {
		if path, parser := findUserConfig(configDir); path != "" {
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load %s", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded user config")
		}
	}

	if err := k.Load(envProvider(), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply flag overrides")
		}
	}

	var settings Settings
	if err := k.Unmarshal("settings", &settings); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid settings")
	}

	manifest, err := parseManifest(defaultManifest)
	if err != nil {
		return nil, err
	}

	cfg := &Config{Settings: settings, Manifest: manifest}
	logger.Debug().
		Str("profile", settings.Profile).
		Bool("dryRun", settings.DryRun).
		Msg("Configuration loaded")
	return cfg, nil
}

// findUserConfig returns the first existing user config file and the
// parser matching its extension.
func findUserConfig(configDir string) (string, koanf.Parser) {
	candidates := []struct {
		name   string
		parser koanf.Parser
	}{
		{"dotrig.toml", ktoml.Parser()},
		{"dotrig.yaml", kyaml.Parser()},
		{"dotrig.yml", kyaml.Parser()},
	}
	for _, c := range candidates {
		path := filepath.Join(configDir, c.name)
		if _, err := os.Stat(path); err == nil {
			return path, c.parser
		}
	}
	return "", nil
}

// envProvider maps the documented environment variables onto settings keys,
// converting the 0/1 convention for booleans.
func envProvider() koanf.Provider {
	return env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		mapped, ok := envKeys[key]
		if !ok {
			return "", nil
		}
		switch mapped {
		case "settings.dry_run", "settings.force_stow", "settings.restow":
			return mapped, value == "1" || value == "true"
		}
		return mapped, value
	})
}

// rawBytes is a koanf provider over an in-memory byte slice.
type rawBytesProvider struct {
	bytes []byte
}

func rawBytes(b []byte) *rawBytesProvider {
	return &rawBytesProvider{bytes: b}
}

func (r *rawBytesProvider) ReadBytes() ([]byte, error) {
	return r.bytes, nil
}

func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "rawBytesProvider does not support Read")
}
