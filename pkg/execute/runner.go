// Package execute runs external commands for the provisioner. It owns the
// two behaviors every mutating subprocess call shares: privilege elevation
// (resolved once at construction, not per call) and dry-run substitution.
package execute

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/dotrig/pkg/errors"
	"github.com/arthur-debert/dotrig/pkg/logging"
)

// Runner executes structured commands.
type Runner interface {
	// Run executes a mutating command, streaming output to the terminal.
	Run(ctx context.Context, cmd Command) error

	// RunPrivileged is Run with the elevation prefix applied when the
	// invoking identity is not root.
	RunPrivileged(ctx context.Context, cmd Command) error

	// RunPrivilegedWithInput is RunPrivileged with input fed to the
	// command's stdin. Covers the append-to-system-file cases (tee -a)
	// without round-tripping through a shell.
	RunPrivilegedWithInput(ctx context.Context, cmd Command, input string) error

	// Output executes a read-only query and returns its stdout. Queries
	// execute even in dry-run mode; reads are safe.
	Output(ctx context.Context, cmd Command) (string, error)
}

// DryRunSink receives the rendered command line for each suppressed
// mutating call in dry-run mode.
type DryRunSink func(line string)

// OSRunner runs commands on the host.
type OSRunner struct {
	dryRun  bool
	sink    DryRunSink
	elevate []string // resolved once: nil when root, {"sudo"} otherwise
	canSudo bool
}

// NewRunner creates an OSRunner. The elevation prefix is resolved here and
// reused for every privileged call.
func NewRunner(dryRun bool, sink DryRunSink) *OSRunner {
	r := &OSRunner{dryRun: dryRun, sink: sink}
	if os.Geteuid() == 0 {
		r.canSudo = true
		return r
	}
	if _, err := exec.LookPath("sudo"); err == nil {
		r.elevate = []string{"sudo"}
		r.canSudo = true
	}
	return r
}

// Run executes a mutating command.
func (r *OSRunner) Run(ctx context.Context, cmd Command) error {
	if r.dryRun {
		r.emit(cmd.String())
		return nil
	}
	logging.LogCommand(cmd.Program, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// RunPrivileged executes a mutating command with the elevation prefix.
func (r *OSRunner) RunPrivileged(ctx context.Context, cmd Command) error {
	if r.dryRun {
		r.emit(r.privileged(cmd).String())
		return nil
	}
	if !r.canSudo {
		return errors.Newf(errors.ErrNoPrivileges,
			"%s requires root privileges and sudo is not available", cmd.Program)
	}
	return r.Run(ctx, r.privileged(cmd))
}

// RunPrivilegedWithInput executes a privileged command with input on stdin.
func (r *OSRunner) RunPrivilegedWithInput(ctx context.Context, cmd Command, input string) error {
	if r.dryRun {
		r.emit(r.privileged(cmd).String() + " <stdin>")
		return nil
	}
	if !r.canSudo {
		return errors.Newf(errors.ErrNoPrivileges,
			"%s requires root privileges and sudo is not available", cmd.Program)
	}
	full := r.privileged(cmd)
	logging.LogCommand(full.Program, full.Args)

	c := exec.CommandContext(ctx, full.Program, full.Args...)
	c.Stdin = strings.NewReader(input)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// Output executes a read-only query.
func (r *OSRunner) Output(ctx context.Context, cmd Command) (string, error) {
	logging.LogCommand(cmd.Program, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	var stdout bytes.Buffer
	c.Stdout = &stdout
	// stderr is deliberately discarded: presence queries are expected to
	// fail noisily on absent packages
	err := c.Run()
	return stdout.String(), err
}

func (r *OSRunner) privileged(cmd Command) Command {
	if len(r.elevate) == 0 {
		return cmd
	}
	args := append(append([]string{}, r.elevate[1:]...), cmd.Program)
	args = append(args, cmd.Args...)
	return Command{Program: r.elevate[0], Args: args}
}

func (r *OSRunner) emit(line string) {
	if r.sink != nil {
		r.sink(line)
	}
}
