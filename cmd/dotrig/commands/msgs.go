package commands

// User-facing strings, collected so the command files stay readable.
const (
	MsgRootShort = "Personal machine bootstrap: packages, shell, dotfiles"
	MsgRootLong  = `dotrig provisions a machine from nothing: it detects the host OS and
deployment profile, installs a curated tool set through the native package
manager (Homebrew, dnf, pacman), clones the dotfiles collection, and
symlinks dotfile packages into the home directory, conflict-safe.

Presence on disk is the only state: every run is idempotent and a dry run
shows exactly what a real run would do.`

	MsgFlagVerbose = "Increase verbosity (-v info, -vv debug, -vvv trace)"
	MsgFlagDryRun  = "Print mutating actions instead of executing them"
	MsgFlagForce   = "Adopt conflicting files into dotfile packages (destructive)"

	MsgFlagAll           = "Reconcile every package directory under the dotfiles root"
	MsgFlagApps          = "Space-separated list of dotfile packages to reconcile"
	MsgFlagSkipBootstrap = "Skip package installation and shell setup"
	MsgFlagSkipStow      = "Skip dotfile reconciliation"

	MsgErrUnsupported   = "unsupported platform: dotrig knows macOS, Fedora and Arch"
	MsgErrNoDotfiles    = "dotfiles root %s does not exist and DOTFILES_REPO_URL is not set"
	MsgErrGitMissing    = "git is required to clone the dotfiles collection"
	MsgErrNothingToStow = "nothing to stow: pass --all or --apps \"pkg ...\""
)
