package installer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dotrig/pkg/testutil"
	"github.com/arthur-debert/dotrig/pkg/types"
)

func TestNew_DispatchesOnOS(t *testing.T) {
	runner := testutil.NewFakeRunner()
	pb := testutil.FakeProbe()

	tests := []struct {
		os   types.OSID
		want string
	}{
		{types.OSMacOS, "brew"},
		{types.OSFedora, "dnf"},
		{types.OSArch, "pacman"},
	}
	for _, tt := range tests {
		inst, err := New(types.HostProfile{OS: tt.os}, runner, pb, Options{})
		require.NoError(t, err)
		assert.Equal(t, tt.want, inst.Name())
	}
}

func TestNew_UnknownOSIsError(t *testing.T) {
	_, err := New(types.HostProfile{OS: types.OSUnknown}, testutil.NewFakeRunner(), testutil.FakeProbe(), Options{})
	assert.Error(t, err)
}

// Idempotence: a second ensure of a satisfied package reports
// already-present and runs no mutating command.
func TestEnsure_Idempotent(t *testing.T) {
	runner := testutil.NewFakeRunner()
	pb := testutil.FakeProbe("rg")
	dnf := NewDnf(runner, pb, Options{})

	pkg := types.Package{Name: "ripgrep", Command: "rg"}

	for i := 0; i < 2; i++ {
		result := dnf.Ensure(context.Background(), pkg)
		assert.Equal(t, types.OutcomeAlreadyPresent, result.Outcome, "call %d", i+1)
	}
	assert.Empty(t, runner.Commands, "ensure of a present package must not mutate")
}

func TestDnf_NativeInstall(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("rpm -q tmux") // not in the rpm database
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{})

	result := dnf.Ensure(context.Background(), types.Package{Name: "tmux"})

	assert.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{"dnf install -y tmux"}, runner.Commands)
	assert.Equal(t, []string{"dnf install -y tmux"}, runner.Privileged,
		"installs must go through the elevation path")
}

func TestDnf_CoprFallback(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("rpm -q lazygit")
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{})

	pkg := types.Package{Name: "lazygit", Method: types.MethodRepoPlugin, Channel: "atim/lazygit"}
	result := dnf.Ensure(context.Background(), pkg)

	require.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{
		"dnf copr enable -y atim/lazygit",
		"dnf install -y lazygit",
	}, runner.Commands, "channel enablement must precede the install")
}

func TestDnf_TryThenFallback(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("rpm -q gh")
	runner.FailTimes("dnf install -y gh", 1)
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{})

	pkg := types.Package{
		Name:    "gh",
		Method:  types.MethodTryFallback,
		Channel: "https://cli.github.com/packages/rpm/gh-cli.repo",
	}
	result := dnf.Ensure(context.Background(), pkg)

	require.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{
		"dnf install -y gh",
		"dnf config-manager --add-repo https://cli.github.com/packages/rpm/gh-cli.repo",
		"dnf install -y gh",
	}, runner.Commands)
}

func TestDnf_TryThenFallbackStillFailing(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("rpm -q gh")
	runner.Fail("dnf install -y gh")
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{})

	pkg := types.Package{Name: "gh", Method: types.MethodTryFallback, Channel: "repo"}
	result := dnf.Ensure(context.Background(), pkg)

	assert.Equal(t, types.OutcomeFailed, result.Outcome)
	assert.Error(t, result.Err)
}

type fakeCloner struct {
	calls []string
}

func (f *fakeCloner) CloneRef(_ context.Context, url, ref, target string) error {
	f.calls = append(f.calls, url+"@"+ref+" -> "+target)
	return nil
}

func TestDnf_BuildFromSource(t *testing.T) {
	runner := testutil.NewFakeRunner()
	cloner := &fakeCloner{}
	// nothing in the rpm database, toolchain included
	for _, name := range []string{"neovim", "git", "cmake", "make", "gcc-c++"} {
		runner.Fail("rpm -q " + name)
	}
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{
		NvimInstallPrefix: "/usr/local",
		Git:               cloner,
		BuildDir:          "/var/tmp/dotrig",
	})

	pkg := types.Package{
		Name:       "neovim",
		Command:    "nvim",
		Method:     types.MethodBuildSource,
		SourceRepo: "https://github.com/neovim/neovim",
		SourceRef:  "v0.10.4",
	}
	result := dnf.Ensure(context.Background(), pkg)

	require.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{"https://github.com/neovim/neovim@v0.10.4 -> /var/tmp/dotrig/neovim"}, cloner.calls)

	// toolchain first, then build, then privileged install
	assert.Contains(t, runner.Commands, "dnf install -y cmake")
	assert.Contains(t, runner.Commands, "make -C /var/tmp/dotrig/neovim CMAKE_BUILD_TYPE=Release CMAKE_INSTALL_PREFIX=/usr/local")
	assert.Contains(t, runner.Privileged, "make -C /var/tmp/dotrig/neovim install")
}

func TestDnf_FailureDoesNotPanic(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("rpm -q fzf")
	runner.Fail("dnf install -y fzf")
	dnf := NewDnf(runner, testutil.FakeProbe(), Options{})

	result := dnf.Ensure(context.Background(), types.Package{Name: "fzf"})
	assert.True(t, result.Failed())
	assert.Equal(t, "fzf", result.Package)
}

func TestBrew_CaskInstall(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("brew list --cask wezterm")
	brew := NewBrew(runner, testutil.FakeProbe())

	pkg := types.Package{Name: "wezterm", Method: types.MethodCask, DesktopOnly: true}
	result := brew.Ensure(context.Background(), pkg)

	require.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{"brew install --cask wezterm"}, runner.Commands)
	assert.Empty(t, runner.Privileged, "brew never runs privileged")
}

func TestBrew_PresentViaDatabase(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Outputs["brew list --versions fzf"] = "fzf 0.54.0"
	brew := NewBrew(runner, testutil.FakeProbe())

	result := brew.Ensure(context.Background(), types.Package{Name: "fzf"})
	assert.Equal(t, types.OutcomeAlreadyPresent, result.Outcome)
	assert.Empty(t, runner.Commands)
}

func TestPacman_Install(t *testing.T) {
	runner := testutil.NewFakeRunner()
	runner.Fail("pacman -Qi lazygit")
	pacman := NewPacman(runner, testutil.FakeProbe())

	result := pacman.Ensure(context.Background(), types.Package{Name: "lazygit"})

	require.Equal(t, types.OutcomeInstalled, result.Outcome)
	assert.Equal(t, []string{"pacman -S --noconfirm --needed lazygit"}, runner.Privileged)
}
