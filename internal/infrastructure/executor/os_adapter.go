package executor

import (
	"context"
	"os"
	"os/exec"
)

// OSCommandExecutor implements CommandExecutor using os/exec package.
//
// Usage in production:
//
//	exec := executor.NewOSCommandExecutor()
//	out, err := exec.Run(ctx, executor.Command{Name: "go", Args: []string{"version"}})
type OSCommandExecutor struct{}

// NewOSCommandExecutor creates a new command executor using the real OS exec package.
func NewOSCommandExecutor() *OSCommandExecutor {
	return &OSCommandExecutor{}
}

// Run executes a command using exec.CommandContext.
//
// Error Handling:
//   - Returns *exec.ExitError if command exits with non-zero status
//   - Returns the context error if ctx is cancelled first
//   - Returns *exec.Error if command cannot be found/executed
func (e *OSCommandExecutor) Run(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	return cmd.CombinedOutput()
}

// LookPath wraps exec.LookPath.
func (e *OSCommandExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
