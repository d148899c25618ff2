package types

// OSID identifies a supported operating system. The set is closed: every
// switch over OSID handles all four values explicitly.
type OSID int

const (
	// OSUnknown is the fallback for platforms dotrig does not support.
	OSUnknown OSID = iota
	OSMacOS
	OSFedora
	OSArch
)

// String returns the canonical lowercase identifier for the OS.
func (o OSID) String() string {
	switch o {
	case OSMacOS:
		return "macos"
	case OSFedora:
		return "fedora"
	case OSArch:
		return "arch"
	}
	return "unknown"
}

// Profile is the coarse deployment classification. Desktop hosts get
// GUI-adjacent tools (terminal emulator casks etc.); servers do not.
type Profile int

const (
	ProfileDesktop Profile = iota
	ProfileServer
)

func (p Profile) String() string {
	if p == ProfileServer {
		return "server"
	}
	return "desktop"
}

// ParseProfile maps a user-supplied profile name to a Profile. The second
// return value reports whether the name was recognized; "auto" and unknown
// strings both return false so detection takes over.
func ParseProfile(s string) (Profile, bool) {
	switch s {
	case "desktop":
		return ProfileDesktop, true
	case "server":
		return ProfileServer, true
	}
	return ProfileDesktop, false
}

// HostProfile is the result of host detection. It is derived once at startup
// and treated as immutable for the rest of the run.
type HostProfile struct {
	OS      OSID
	Profile Profile
}

// Supported reports whether dotrig knows how to provision this host.
func (h HostProfile) Supported() bool {
	return h.OS != OSUnknown
}

func (h HostProfile) String() string {
	return h.OS.String() + "/" + h.Profile.String()
}
