package proof

import (
	"log/slog"
	"runtime"
	"sync"
)

// Option configures a Bridge.
type Option func(*Bridge)

// WithReentrant disables call serialization. Use it only when the foreign
// module is known to be safe for concurrent Prove calls.
func WithReentrant() Option {
	return func(b *Bridge) { b.reentrant = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// Bridge invokes the foreign prover. Calls are serialized unless the bridge
// was created WithReentrant.
type Bridge struct {
	foreign   Foreign
	reentrant bool
	mu        sync.Mutex
	logger    *slog.Logger
}

// New creates a Bridge over the given foreign layer.
func New(f Foreign, opts ...Option) *Bridge {
	b := &Bridge{foreign: f, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Invoke sends req to the prover and returns a Go-owned copy of the
// ProofSize-byte result. Encoding problems are reported before the foreign
// side is called; a NULL result yields ErrProverFailed and nothing is freed.
func (b *Bridge) Invoke(req Request) ([]byte, error) {
	text, err := req.Encode()
	if err != nil {
		return nil, &InvocationError{Kind: KindEncoding, Err: err}
	}
	cstr := append(text, 0)

	if !b.reentrant {
		b.mu.Lock()
		defer b.mu.Unlock()
	}

	b.logger.Debug("calling foreign prover", "request_bytes", len(text))
	ptr := b.foreign.Prove(&cstr[0])
	runtime.KeepAlive(cstr)
	if ptr == nil {
		return nil, &InvocationError{Kind: KindProverFailed}
	}

	proof, err := newForeignBuffer(ptr, b.foreign).materialize(ProofSize)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("proof received", "bytes", len(proof))
	return proof, nil
}
