// Package prooftest provides an in-memory foreign layer for testing code
// that uses proof.Bridge.
package prooftest

import (
	"sync"
	"unsafe"

	"github.com/altuslabsxyz/proof-bridge/pkg/proof"
)

// Pattern returns n deterministic bytes: byte i is (i*7 + 3) mod 256.
func Pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

// Foreign mimics the foreign module. Prove hands out Go-allocated buffers
// and remembers them so FreeProof can verify each release.
type Foreign struct {
	mu sync.Mutex

	result []byte
	fail   bool
	live   map[unsafe.Pointer][]byte

	proveCalls   int
	freeCalls    int
	invalidFrees int
	inputs       []string
}

var _ proof.Foreign = (*Foreign)(nil)

// New returns a Foreign whose Prove returns a copy of result.
// result must not be empty.
func New(result []byte) *Foreign {
	return &Foreign{result: result, live: map[unsafe.Pointer][]byte{}}
}

// Failing returns a Foreign whose Prove always returns nil.
func Failing() *Foreign {
	return &Foreign{fail: true, live: map[unsafe.Pointer][]byte{}}
}

// Prove implements proof.Foreign.
func (f *Foreign) Prove(input *byte) unsafe.Pointer {
	text := goString(input)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.proveCalls++
	f.inputs = append(f.inputs, text)
	if f.fail {
		return nil
	}
	buf := make([]byte, len(f.result))
	copy(buf, f.result)
	p := unsafe.Pointer(&buf[0])
	f.live[p] = buf
	return p
}

// FreeProof implements proof.Foreign. Pointers it never handed out, or
// already released, are counted as invalid frees.
func (f *Foreign) FreeProof(p unsafe.Pointer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freeCalls++
	if _, ok := f.live[p]; !ok {
		f.invalidFrees++
		return
	}
	delete(f.live, p)
}

// ProveCalls returns the number of Prove calls.
func (f *Foreign) ProveCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.proveCalls
}

// FreeCalls returns the number of FreeProof calls.
func (f *Foreign) FreeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.freeCalls
}

// InvalidFrees returns the number of releases of unknown or already freed pointers.
func (f *Foreign) InvalidFrees() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidFrees
}

// Outstanding returns the number of buffers handed out and not yet freed.
func (f *Foreign) Outstanding() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

// Inputs returns the request texts received by Prove, without the NUL terminator.
func (f *Foreign) Inputs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

// Reporting wraps a Foreign and also reports buffer lengths.
type Reporting struct {
	*Foreign
}

var _ proof.LengthReporter = Reporting{}

// ProofLen implements proof.LengthReporter.
func (r Reporting) ProofLen(p unsafe.Pointer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live[p])
}

func goString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
