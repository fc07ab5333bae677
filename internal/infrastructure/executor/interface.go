package executor

import (
	"context"
	"strings"
)

// Command describes one external tool invocation.
type Command struct {
	Name string   // executable name or path, e.g. "go"
	Args []string // arguments, e.g. "mod", "download"
	Dir  string   // working directory; empty means the current directory
	Env  []string // KEY=VALUE pairs appended to the inherited environment
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandExecutor abstracts command execution for testing.
//
// Security Note: Caller is responsible for validating arguments; commands are
// never run through a shell.
type CommandExecutor interface {
	// Run executes the command and blocks until it exits. The returned bytes
	// hold combined stdout and stderr, also on failure.
	Run(ctx context.Context, cmd Command) ([]byte, error)

	// LookPath resolves an executable name against PATH.
	LookPath(name string) (string, error)
}
