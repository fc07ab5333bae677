package proof

import (
	"errors"
	"fmt"
)

// Kind classifies an InvocationError.
type Kind int

const (
	// KindEncoding: the request could not be turned into a C string. The
	// caller may fix the request and retry.
	KindEncoding Kind = iota + 1
	// KindProverFailed: Prove returned NULL. No further detail is available.
	KindProverFailed
	// KindLengthMismatch: the foreign side reported a result size other than ProofSize.
	KindLengthMismatch
)

var (
	ErrEncoding       = errors.New("request encoding failed")
	ErrProverFailed   = errors.New("proof generation failed")
	ErrLengthMismatch = errors.New("proof length mismatch")

	// ErrNotLinked is returned by Native when the binary was built without the foreign archive.
	ErrNotLinked = errors.New("foreign prover not linked (build with -tags libproof)")

	// ErrBufferReleased is returned when a foreign buffer is materialized twice.
	ErrBufferReleased = errors.New("foreign buffer already released")
)

func (k Kind) sentinel() error {
	switch k {
	case KindEncoding:
		return ErrEncoding
	case KindProverFailed:
		return ErrProverFailed
	case KindLengthMismatch:
		return ErrLengthMismatch
	}
	return nil
}

// InvocationError is returned by Bridge.Invoke.
type InvocationError struct {
	Kind Kind
	Err  error // underlying cause, may be nil
}

func (e *InvocationError) Error() string {
	base := e.Kind.sentinel()
	if base == nil {
		base = errors.New("invocation failed")
	}
	if e.Err == nil {
		return base.Error()
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Is matches the sentinel for the error's Kind.
func (e *InvocationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
