package execute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "brew", NewCommand("brew").String())
	assert.Equal(t, "dnf install -y git", NewCommand("dnf", "install", "-y", "git").String())
}

// Dry-run purity: mutating calls never execute, they only describe.
func TestRunner_DryRunSuppressesMutations(t *testing.T) {
	var lines []string
	r := NewRunner(true, func(line string) { lines = append(lines, line) })

	// this program does not exist; a real execution would fail loudly
	err := r.Run(context.Background(), NewCommand("dotrig-no-such-program", "--flag"))
	require.NoError(t, err)

	err = r.RunPrivileged(context.Background(), NewCommand("dotrig-no-such-program"))
	require.NoError(t, err)

	err = r.RunPrivilegedWithInput(context.Background(), NewCommand("dotrig-no-such-program"), "in")
	require.NoError(t, err)

	require.Len(t, lines, 3)
	assert.Equal(t, "dotrig-no-such-program --flag", lines[0])
}

func TestRunner_OutputRunsEvenInDryRun(t *testing.T) {
	r := NewRunner(true, nil)

	// reads are safe: queries still execute under dry-run
	out, err := r.Output(context.Background(), NewCommand("echo", "hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out)
}

func TestRunner_RunExecutes(t *testing.T) {
	r := NewRunner(false, nil)

	err := r.Run(context.Background(), NewCommand("true"))
	assert.NoError(t, err)

	err = r.Run(context.Background(), NewCommand("false"))
	assert.Error(t, err)
}
