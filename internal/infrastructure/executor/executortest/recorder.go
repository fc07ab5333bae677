// Package executortest provides a scripted CommandExecutor for tests.
package executortest

import (
	"context"
	"errors"
	"sync"

	"github.com/altuslabsxyz/proof-bridge/internal/infrastructure/executor"
)

// Response is the scripted outcome of one command.
type Response struct {
	Output []byte
	Err    error
	// Effect runs before the response is returned, e.g. to create an artifact.
	Effect func(cmd executor.Command) error
}

// Recorder records commands and answers them from a script keyed by the
// command line (executor.Command.String). Unscripted commands succeed.
type Recorder struct {
	mu       sync.Mutex
	Script   map[string]Response
	Missing  map[string]bool // tools LookPath reports as absent
	Commands []executor.Command
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		Script:  map[string]Response{},
		Missing: map[string]bool{},
	}
}

// Run implements executor.CommandExecutor.
func (r *Recorder) Run(_ context.Context, cmd executor.Command) ([]byte, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	resp, ok := r.Script[cmd.String()]
	r.mu.Unlock()

	if !ok {
		return nil, nil
	}
	if resp.Effect != nil {
		if err := resp.Effect(cmd); err != nil {
			return resp.Output, err
		}
	}
	return resp.Output, resp.Err
}

// LookPath implements executor.CommandExecutor.
func (r *Recorder) LookPath(name string) (string, error) {
	if r.Missing[name] {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + name, nil
}

// Lines returns the recorded command lines in order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := make([]string, len(r.Commands))
	for i, c := range r.Commands {
		lines[i] = c.String()
	}
	return lines
}
