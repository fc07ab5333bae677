package gotool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
)

var (
	// ErrToolMissing is returned when the go command cannot be found on PATH.
	ErrToolMissing = errors.New("go toolchain not found")

	// ErrCommandFailed is returned when a go command exits unsuccessfully.
	ErrCommandFailed = errors.New("go command failed")
)

// CommandError carries the failed command and its combined output.
type CommandError struct {
	Command string
	Dir     string
	Output  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s (in %s): %v", e.Command, e.Dir, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

func newCommandError(cmd executor.Command, out []byte, err error) error {
	return &CommandError{
		Command: cmd.String(),
		Dir:     cmd.Dir,
		Output:  string(out),
		Err:     err,
	}
}
