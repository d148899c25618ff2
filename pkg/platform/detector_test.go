package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/testutil"
	"github.com/arthur-debert/dotrig/pkg/types"
)

func noEnv(string) string { return "" }

func envWith(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetect_Darwin(t *testing.T) {
	d := NewDetector(Options{GOOS: "darwin", Getenv: noEnv})
	host := d.Detect("")

	assert.Equal(t, types.OSMacOS, host.OS)
	assert.Equal(t, types.ProfileDesktop, host.Profile)
}

func TestDetect_OSRelease(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    types.OSID
	}{
		{"fedora", "NAME=\"Fedora Linux\"\nID=fedora\nVERSION_ID=40\n", types.OSFedora},
		{"arch", "NAME=\"Arch Linux\"\nID=arch\nBUILD_ID=rolling\n", types.OSArch},
		{"debian is unknown", "NAME=\"Debian GNU/Linux\"\nID=debian\n", types.OSUnknown},
		{"garbage", "not an ini file at(((all", types.OSUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.CreateFile(t, dir, "os-release", tt.content)

			d := NewDetector(Options{GOOS: "linux", OSReleasePath: path, Getenv: noEnv})
			assert.Equal(t, tt.want, d.Detect("").OS)
		})
	}
}

func TestDetect_MissingOSReleaseIsUnknown(t *testing.T) {
	d := NewDetector(Options{
		GOOS:          "linux",
		OSReleasePath: "/definitely/not/here",
		Getenv:        noEnv,
		FS:            filesystem.NewMemory(),
	})
	assert.Equal(t, types.OSUnknown, d.Detect("").OS)
}

func TestDetect_HeadlessHeuristic(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "os-release", "ID=fedora\n")

	t.Run("no display means server", func(t *testing.T) {
		d := NewDetector(Options{GOOS: "linux", OSReleasePath: path, Getenv: noEnv})
		assert.Equal(t, types.ProfileServer, d.Detect("").Profile)
	})

	t.Run("x11 display means desktop", func(t *testing.T) {
		d := NewDetector(Options{GOOS: "linux", OSReleasePath: path,
			Getenv: envWith(map[string]string{"DISPLAY": ":0"})})
		assert.Equal(t, types.ProfileDesktop, d.Detect("").Profile)
	})

	t.Run("wayland display means desktop", func(t *testing.T) {
		d := NewDetector(Options{GOOS: "linux", OSReleasePath: path,
			Getenv: envWith(map[string]string{"WAYLAND_DISPLAY": "wayland-0"})})
		assert.Equal(t, types.ProfileDesktop, d.Detect("").Profile)
	})
}

// The explicit override always wins, even against the macOS == desktop rule.
func TestDetect_OverrideAlwaysWins(t *testing.T) {
	d := NewDetector(Options{GOOS: "darwin", Getenv: noEnv})

	assert.Equal(t, types.ProfileServer, d.Detect("server").Profile)
	assert.Equal(t, types.ProfileDesktop, d.Detect("desktop").Profile)

	// auto and unrecognized values fall through to detection
	assert.Equal(t, types.ProfileDesktop, d.Detect("auto").Profile)
	assert.Equal(t, types.ProfileDesktop, d.Detect("bogus").Profile)
}

// Detection is total: every GOOS value maps to exactly one closed enum
// value and never errors.
func TestDetect_NeverFails(t *testing.T) {
	for _, goos := range []string{"darwin", "linux", "windows", "freebsd", ""} {
		d := NewDetector(Options{GOOS: goos, Getenv: noEnv, FS: filesystem.NewMemory()})
		host := d.Detect("")
		assert.Contains(t, []types.OSID{
			types.OSMacOS, types.OSFedora, types.OSArch, types.OSUnknown,
		}, host.OS, "GOOS=%s", goos)
	}
}
