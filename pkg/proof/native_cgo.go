//go:build cgo && libproof

package proof

/*
extern unsigned char* Prove(char* input);
extern void FreeProof(unsigned char* ptr);
*/
import "C"

import "unsafe"

type nativeForeign struct{}

func (nativeForeign) Prove(input *byte) unsafe.Pointer {
	return unsafe.Pointer(C.Prove((*C.char)(unsafe.Pointer(input))))
}

func (nativeForeign) FreeProof(p unsafe.Pointer) {
	C.FreeProof((*C.uchar)(p))
}

// Native returns the foreign layer linked from libproof.a.
func Native() (Foreign, error) {
	return nativeForeign{}, nil
}
