package types

// InstallMethod says how a package is obtained on a given OS.
type InstallMethod int

const (
	// MethodNative uses the OS package manager's default repositories.
	MethodNative InstallMethod = iota
	// MethodCask installs a GUI application (Homebrew cask on macOS).
	MethodCask
	// MethodRepoPlugin enables a named external repository channel first,
	// then installs natively (e.g. dnf COPR).
	MethodRepoPlugin
	// MethodBuildSource provisions a toolchain and builds from a pinned
	// upstream source when no repository carries the package.
	MethodBuildSource
	// MethodTryFallback attempts the default install first and enables the
	// named external channel only after an initial failure, retrying once.
	MethodTryFallback
)

func (m InstallMethod) String() string {
	switch m {
	case MethodCask:
		return "cask"
	case MethodRepoPlugin:
		return "repo-plugin"
	case MethodBuildSource:
		return "build-source"
	case MethodTryFallback:
		return "try-fallback"
	}
	return "native"
}

// ParseInstallMethod maps a manifest method string to an InstallMethod.
// The empty string means native.
func ParseInstallMethod(s string) (InstallMethod, bool) {
	switch s {
	case "", "native":
		return MethodNative, true
	case "cask":
		return MethodCask, true
	case "repo-plugin":
		return MethodRepoPlugin, true
	case "build-source":
		return MethodBuildSource, true
	case "try-fallback":
		return MethodTryFallback, true
	}
	return MethodNative, false
}

// Package is a single provisionable package for one OS.
type Package struct {
	// Name is the package name as the OS package manager knows it.
	Name string

	// Command is the binary the package provides, when it differs from
	// Name (e.g. ripgrep installs rg). Empty means same as Name.
	Command string

	Method InstallMethod

	// Channel names the external repository channel for repo-plugin and
	// try-fallback packages (a COPR project, a .repo file URL).
	Channel string

	// SourceRepo and SourceRef pin the upstream for build-source packages.
	SourceRepo string
	SourceRef  string

	// DesktopOnly gates the package on Profile == desktop.
	DesktopOnly bool
}

// Binary returns the command name the package is expected to provide.
func (p Package) Binary() string {
	if p.Command != "" {
		return p.Command
	}
	return p.Name
}

// InstallOutcome classifies the result of an ensure operation.
type InstallOutcome int

const (
	OutcomeAlreadyPresent InstallOutcome = iota
	OutcomeInstalled
	OutcomeFailed
)

func (o InstallOutcome) String() string {
	switch o {
	case OutcomeInstalled:
		return "installed"
	case OutcomeFailed:
		return "failed"
	}
	return "already-present"
}

// InstallResult is the ephemeral, per-package outcome of an ensure call.
// It exists for logging and continue-vs-abort decisions only; nothing
// persists it between runs.
type InstallResult struct {
	Package string
	Outcome InstallOutcome
	Err     error
}

// Failed reports whether the ensure operation failed.
func (r InstallResult) Failed() bool {
	return r.Outcome == OutcomeFailed
}
