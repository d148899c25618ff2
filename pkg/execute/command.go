package execute

import (
	"strings"
)

// Command is a structured command descriptor: a program and its argument
// list, executed directly with no shell re-interpretation. Building these
// instead of command strings removes quoting ambiguity and injection risk.
type Command struct {
	Program string
	Args    []string
}

// NewCommand builds a Command.
func NewCommand(program string, args ...string) Command {
	return Command{Program: program, Args: args}
}

// String renders the command for logs and dry-run output. Display only;
// never fed back to a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Program
	}
	return c.Program + " " + strings.Join(c.Args, " ")
}
