package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotrig/pkg/testutil"
	"github.com/arthur-debert/dotrig/pkg/types"
)

func clearRunEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROFILE", "DRY_RUN", "FORCE_STOW", "RESTOW",
		"DOTFILES_REPO_URL", "DOTFILES_ROOT", "NVIM_INSTALL_PREFIX",
	} {
		testutil.Unsetenv(t, key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearRunEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Settings.Profile)
	assert.False(t, cfg.Settings.DryRun)
	assert.False(t, cfg.Settings.ForceStow)
	assert.False(t, cfg.Settings.Restow)
	assert.Equal(t, "/usr/local", cfg.Settings.NvimInstallPrefix)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearRunEnv(t)
	testutil.Setenv(t, "PROFILE", "server")
	testutil.Setenv(t, "DRY_RUN", "1")
	testutil.Setenv(t, "FORCE_STOW", "true")
	testutil.Setenv(t, "DOTFILES_REPO_URL", "git@example.com:me/dotfiles.git")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Settings.Profile)
	assert.True(t, cfg.Settings.DryRun)
	assert.True(t, cfg.Settings.ForceStow)
	assert.Equal(t, "git@example.com:me/dotfiles.git", cfg.Settings.DotfilesRepoURL)
}

func TestLoad_ZeroMeansFalse(t *testing.T) {
	clearRunEnv(t)
	testutil.Setenv(t, "DRY_RUN", "0")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.False(t, cfg.Settings.DryRun)
}

func TestLoad_FlagOverridesBeatEnv(t *testing.T) {
	clearRunEnv(t)
	testutil.Setenv(t, "DRY_RUN", "0")

	cfg, err := Load("", map[string]interface{}{"settings.dry_run": true})
	require.NoError(t, err)
	assert.True(t, cfg.Settings.DryRun)
}

func TestLoad_UserConfigFile(t *testing.T) {
	clearRunEnv(t)

	dir := t.TempDir()
	testutil.CreateFile(t, dir, "dotrig.toml", "[settings]\nprofile = \"server\"\n")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, "server", cfg.Settings.Profile)
}

func TestLoad_UserConfigYaml(t *testing.T) {
	clearRunEnv(t)

	dir := t.TempDir()
	testutil.CreateFile(t, dir, "dotrig.yaml", "settings:\n  restow: true\n")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.True(t, cfg.Settings.Restow)
}

func TestManifest_PackagesPerOS(t *testing.T) {
	clearRunEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	for _, os := range []types.OSID{types.OSMacOS, types.OSFedora, types.OSArch} {
		pkgs := cfg.Manifest.PackagesFor(os)
		require.NotEmpty(t, pkgs, "no packages for %s", os)

		names := make(map[string]types.Package, len(pkgs))
		for _, p := range pkgs {
			names[p.Name] = p
		}
		// every OS provisions the core set
		for _, core := range []string{"git", "stow", "zsh", "tmux"} {
			assert.Contains(t, names, core, "%s missing %s", os, core)
		}
	}

	assert.Empty(t, cfg.Manifest.PackagesFor(types.OSUnknown))
}

func TestManifest_FedoraFallbackChains(t *testing.T) {
	clearRunEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	byName := make(map[string]types.Package)
	for _, p := range cfg.Manifest.PackagesFor(types.OSFedora) {
		byName[p.Name] = p
	}

	lazygit := byName["lazygit"]
	assert.Equal(t, types.MethodRepoPlugin, lazygit.Method)
	assert.Equal(t, "atim/lazygit", lazygit.Channel)

	neovim := byName["neovim"]
	assert.Equal(t, types.MethodBuildSource, neovim.Method)
	assert.Equal(t, "https://github.com/neovim/neovim", neovim.SourceRepo)
	assert.NotEmpty(t, neovim.SourceRef)
	assert.Equal(t, "nvim", neovim.Binary())

	gh := byName["gh"]
	assert.Equal(t, types.MethodTryFallback, gh.Method)
	assert.NotEmpty(t, gh.Channel)
}

func TestManifest_DesktopGating(t *testing.T) {
	clearRunEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	for _, os := range []types.OSID{types.OSMacOS, types.OSFedora, types.OSArch} {
		found := false
		for _, p := range cfg.Manifest.PackagesFor(os) {
			if p.Name == "wezterm" {
				found = true
				assert.True(t, p.DesktopOnly, "%s wezterm must be desktop only", os)
			}
		}
		assert.True(t, found, "%s has no GUI terminal package", os)
	}
}

func TestManifest_StowTable(t *testing.T) {
	clearRunEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	cmd, mapped := cfg.Manifest.StowCommand("nvim")
	assert.True(t, mapped)
	assert.Equal(t, "nvim", cmd)

	_, mapped = cfg.Manifest.StowCommand("some-new-package")
	assert.False(t, mapped, "unmapped packages must fall through to always-eligible")
}
