package proof

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingForeign struct {
	data  []byte
	frees []unsafe.Pointer
}

func (c *countingForeign) Prove(*byte) unsafe.Pointer { return unsafe.Pointer(&c.data[0]) }

func (c *countingForeign) FreeProof(p unsafe.Pointer) { c.frees = append(c.frees, p) }

func TestForeignBufferMaterializeOnce(t *testing.T) {
	f := &countingForeign{data: []byte{1, 2, 3, 4}}
	ptr := unsafe.Pointer(&f.data[0])
	buf := newForeignBuffer(ptr, f)

	got, err := buf.materialize(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
	require.Len(t, f.frees, 1)
	assert.Equal(t, ptr, f.frees[0])
	assert.Nil(t, buf.ptr)

	_, err = buf.materialize(4)
	assert.ErrorIs(t, err, ErrBufferReleased)
	assert.Len(t, f.frees, 1)
}

func TestForeignBufferCopyIsIndependent(t *testing.T) {
	f := &countingForeign{data: []byte{9, 9}}
	got, err := newForeignBuffer(unsafe.Pointer(&f.data[0]), f).materialize(2)
	require.NoError(t, err)

	f.data[0] = 0
	assert.Equal(t, byte(9), got[0])
}

func TestInvocationErrorMessages(t *testing.T) {
	assert.Equal(t, "proof generation failed", (&InvocationError{Kind: KindProverFailed}).Error())
	err := &InvocationError{Kind: KindEncoding, Err: assert.AnError}
	assert.Contains(t, err.Error(), "request encoding failed: ")
	assert.ErrorIs(t, err, ErrEncoding)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrProverFailed)
}
