package testutil

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/arthur-debert/dotrig/pkg/execute"
	"github.com/arthur-debert/dotrig/pkg/probe"
)

// FakeRunner records every command instead of executing. Responses are
// scripted per rendered command line; unscripted commands succeed with
// empty output.
type FakeRunner struct {
	// Commands holds every mutating call in order, rendered.
	Commands []string

	// Privileged holds the subset of Commands that asked for elevation.
	Privileged []string

	// Queries holds every Output call, rendered.
	Queries []string

	// Errors maps a rendered command line to the error it should return.
	Errors map[string]error

	// Outputs maps a rendered query line to its stdout.
	Outputs map[string]string

	// onceErrors fail a command line a fixed number of times, then let it
	// succeed. For try-then-fallback chains.
	onceErrors map[string]int
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Errors:     make(map[string]error),
		Outputs:    make(map[string]string),
		onceErrors: make(map[string]int),
	}
}

// Fail scripts a permanent failure for the given command line.
func (f *FakeRunner) Fail(cmdline string) {
	f.Errors[cmdline] = fmt.Errorf("scripted failure: %s", cmdline)
}

// FailTimes scripts n failures for the given command line; later calls
// succeed.
func (f *FakeRunner) FailTimes(cmdline string, n int) {
	f.onceErrors[cmdline] = n
}

func (f *FakeRunner) scripted(line string) error {
	if n := f.onceErrors[line]; n > 0 {
		f.onceErrors[line] = n - 1
		return fmt.Errorf("scripted failure: %s", line)
	}
	return f.Errors[line]
}

func (f *FakeRunner) Run(_ context.Context, cmd execute.Command) error {
	line := cmd.String()
	f.Commands = append(f.Commands, line)
	return f.scripted(line)
}

func (f *FakeRunner) RunPrivileged(_ context.Context, cmd execute.Command) error {
	line := cmd.String()
	f.Commands = append(f.Commands, line)
	f.Privileged = append(f.Privileged, line)
	return f.scripted(line)
}

func (f *FakeRunner) RunPrivilegedWithInput(_ context.Context, cmd execute.Command, input string) error {
	line := cmd.String()
	f.Commands = append(f.Commands, line)
	f.Privileged = append(f.Privileged, line)
	return f.scripted(line)
}

func (f *FakeRunner) Output(_ context.Context, cmd execute.Command) (string, error) {
	line := cmd.String()
	f.Queries = append(f.Queries, line)
	if err, ok := f.Errors[line]; ok {
		return "", err
	}
	return f.Outputs[line], nil
}

// Ran reports whether a command line was executed.
func (f *FakeRunner) Ran(cmdline string) bool {
	for _, c := range f.Commands {
		if c == cmdline {
			return true
		}
	}
	return false
}

// FakeProbe builds a probe.Probe that resolves exactly the given commands.
func FakeProbe(available ...string) *probe.Probe {
	set := make(map[string]bool, len(available))
	for _, name := range available {
		set[name] = true
	}
	return probe.NewWithLookup(func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", exec.ErrNotFound
	})
}

// RecordingSink collects ui output lines for assertions.
type RecordingSink struct {
	Infos     []string
	Successes []string
	Warnings  []string
	Errs      []string
	DryRuns   []string
}

func (s *RecordingSink) Info(msg string)    { s.Infos = append(s.Infos, msg) }
func (s *RecordingSink) Success(msg string) { s.Successes = append(s.Successes, msg) }
func (s *RecordingSink) Warn(msg string)    { s.Warnings = append(s.Warnings, msg) }
func (s *RecordingSink) Error(msg string)   { s.Errs = append(s.Errs, msg) }
func (s *RecordingSink) DryRun(cmd string)  { s.DryRuns = append(s.DryRuns, cmd) }
