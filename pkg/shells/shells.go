// Package shells manages the login-shell side of provisioning: registering
// a shell in /etc/shells and changing the user's default shell. These run
// early in the plan so a failed shell change cannot block the tool installs
// that follow.
package shells

import (
	"context"
	"os"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/logging"
	"github.com/arthur-debert/dotrig/pkg/types"
)

// EtcShells is the system registry of allowed login shells.
const EtcShells = "/etc/shells"

// Manager handles shell registration and default-shell changes.
type Manager struct {
	runner execute.Runner
	fs     types.FS

	// getenv is injectable for tests; defaults to os.Getenv.
	getenv func(string) string
}

// New creates a shell Manager.
func New(runner execute.Runner, fs types.FS) *Manager {
	return &Manager{runner: runner, fs: fs, getenv: os.Getenv}
}

// NewWithEnv creates a Manager with a custom environment lookup (tests).
func NewWithEnv(runner execute.Runner, fs types.FS, getenv func(string) string) *Manager {
	return &Manager{runner: runner, fs: fs, getenv: getenv}
}

// IsRegistered reports whether shellPath appears in /etc/shells.
func (m *Manager) IsRegistered(shellPath string) bool {
	data, err := m.fs.ReadFile(EtcShells)
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == shellPath {
			return true
		}
	}
	return false
}

// Register appends shellPath to /etc/shells when missing. Idempotent.
func (m *Manager) Register(ctx context.Context, shellPath string) error {
	logger := logging.GetLogger("shells")

	if m.IsRegistered(shellPath) {
		logger.Debug().Str("shell", shellPath).Msg("Already registered")
		return nil
	}

	cmd := execute.NewCommand("tee", "-a", EtcShells)
	if err := m.runner.RunPrivilegedWithInput(ctx, cmd, shellPath+"\n"); err != nil {
		return errors.Wrapf(err, errors.ErrPlanStep,
			"failed to register %s in %s", shellPath, EtcShells)
	}
	logger.Info().Str("shell", shellPath).Msg("Registered login shell")
	return nil
}

// IsDefault reports whether the invoking user's login shell is shellPath.
// Best effort: relies on $SHELL, which login set for this session.
func (m *Manager) IsDefault(shellPath string) bool {
	return m.getenv("SHELL") == shellPath
}

// ChangeDefault switches the user's login shell. chsh prompts for
// credentials on its own terminal; dotrig does not wrap it with sudo.
func (m *Manager) ChangeDefault(ctx context.Context, shellPath string) error {
	logger := logging.GetLogger("shells")

	if m.IsDefault(shellPath) {
		logger.Debug().Str("shell", shellPath).Msg("Already the default shell")
		return nil
	}

	if err := m.runner.Run(ctx, execute.NewCommand("chsh", "-s", shellPath)); err != nil {
		return errors.Wrapf(err, errors.ErrPlanStep,
			"failed to change default shell to %s", shellPath)
	}
	logger.Info().Str("shell", shellPath).Msg("Changed default shell")
	return nil
}
