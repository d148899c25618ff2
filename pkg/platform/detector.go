// Package platform classifies the host into an OS identifier and a
// deployment profile. Detection runs once at startup and never fails:
// anything dotrig cannot identify comes back as OSUnknown, and profile
// falls back to desktop.
package platform

import (
	"os"
	"runtime"

	"gopkg.in/ini.v1"

	"github.com/arthur-debert/dotrig/pkg/filesystem"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// DefaultOSReleasePath is the standard Linux release-identification file.
const DefaultOSReleasePath = "/etc/os-release"

// Options configures a Detector. Zero-value fields get host defaults.
type Options struct {
	// GOOS overrides the platform marker (tests).
	GOOS string

	// OSReleasePath overrides the os-release file location (tests).
	OSReleasePath string

	// Getenv overrides environment lookup for the headless heuristic.
	Getenv func(string) string

	// FS overrides the filesystem used to read os-release.
	FS types.FS
}

// Detector classifies the host.
type Detector struct {
	goos          string
	osReleasePath string
	getenv        func(string) string
	fs            types.FS
}

// NewDetector creates a Detector with the given options.
func NewDetector(opts Options) *Detector {
	d := &Detector{
		goos:          opts.GOOS,
		osReleasePath: opts.OSReleasePath,
		getenv:        opts.Getenv,
		fs:            opts.FS,
	}
	if d.goos == "" {
		d.goos = runtime.GOOS
	}
	if d.osReleasePath == "" {
		d.osReleasePath = DefaultOSReleasePath
	}
	if d.getenv == nil {
		d.getenv = os.Getenv
	}
	if d.fs == nil {
		d.fs = filesystem.NewOS()
	}
	return d
}

// Detect returns the host profile. profileOverride is used verbatim when it
// names a valid profile, regardless of OS; "auto" or anything unrecognized
// falls through to detection.
func (d *Detector) Detect(profileOverride string) types.HostProfile {
	logger := logging.GetLogger("platform")

	osID := d.detectOS()

	profile, overridden := types.ParseProfile(profileOverride)
	if !overridden {
		profile = d.detectProfile(osID)
	}

	host := types.HostProfile{OS: osID, Profile: profile}
	logger.Debug().
		Str("os", osID.String()).
		Str("profile", profile.String()).
		Bool("overridden", overridden).
		Msg("Host detected")
	return host
}

func (d *Detector) detectOS() types.OSID {
	if d.goos == "darwin" {
		return types.OSMacOS
	}
	if d.goos != "linux" {
		return types.OSUnknown
	}

	data, err := d.fs.ReadFile(d.osReleasePath)
	if err != nil {
		return types.OSUnknown
	}

	release, err := ini.Load(data)
	if err != nil {
		return types.OSUnknown
	}

	switch release.Section("").Key("ID").String() {
	case "fedora":
		return types.OSFedora
	case "arch":
		return types.OSArch
	}
	return types.OSUnknown
}

// detectProfile applies the headless heuristic on Linux: no windowing
// display environment means server. Best-effort and intentionally coarse;
// no attempt to check actual GUI session health.
func (d *Detector) detectProfile(osID types.OSID) types.Profile {
	if osID == types.OSMacOS {
		return types.ProfileDesktop
	}
	if d.getenv("DISPLAY") == "" && d.getenv("WAYLAND_DISPLAY") == "" {
		return types.ProfileServer
	}
	return types.ProfileDesktop
}
