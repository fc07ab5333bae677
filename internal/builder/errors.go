package builder

import "fmt"

// Stage names a pipeline step.
type Stage string

const (
	StageAcquire      Stage = "acquire"
	StageDiscover     Stage = "discover"
	StageDependencies Stage = "dependencies"
	StageCompile      Stage = "compile"
	StageLink         Stage = "link"
)

// Stages lists the pipeline steps in execution order.
var Stages = []Stage{StageAcquire, StageDiscover, StageDependencies, StageCompile, StageLink}

// Description returns a human-readable label for progress output.
func (s Stage) Description() string {
	switch s {
	case StageAcquire:
		return "Acquiring prover source"
	case StageDiscover:
		return "Locating entry point"
	case StageDependencies:
		return "Resolving dependencies"
	case StageCompile:
		return "Compiling static archive"
	case StageLink:
		return "Recording link directives"
	default:
		return string(s)
	}
}

// StageError reports which stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(s Stage, err error) error {
	return &StageError{Stage: s, Err: err}
}
