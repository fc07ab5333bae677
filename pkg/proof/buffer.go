package proof

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// foreignBuffer owns a pointer returned by Foreign.Prove until materialize
// is called. It must be used through a pointer; the atomic field makes
// go vet reject copies.
type foreignBuffer struct {
	ptr     unsafe.Pointer
	foreign Foreign
	live    atomic.Bool
}

func newForeignBuffer(ptr unsafe.Pointer, f Foreign) *foreignBuffer {
	b := &foreignBuffer{ptr: ptr, foreign: f}
	b.live.Store(true)
	return b
}

// materialize copies n bytes into Go memory and releases the foreign
// pointer. Release happens exactly once, after the copy, whether or not the
// copy succeeds. Later calls return ErrBufferReleased.
func (b *foreignBuffer) materialize(n int) ([]byte, error) {
	if !b.live.CompareAndSwap(true, false) {
		return nil, ErrBufferReleased
	}
	ptr := b.ptr
	b.ptr = nil
	defer b.foreign.FreeProof(ptr)

	if lr, ok := b.foreign.(LengthReporter); ok {
		if got := lr.ProofLen(ptr); got != n {
			return nil, &InvocationError{
				Kind: KindLengthMismatch,
				Err:  fmt.Errorf("foreign buffer holds %d bytes, expected %d", got, n),
			}
		}
	}

	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(ptr), n))
	return out, nil
}
