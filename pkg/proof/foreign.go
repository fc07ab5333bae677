package proof

import "unsafe"

// ProofSize is the exact length of a Prove result. The foreign module does
// not report it; it is a property of the module version in use.
const ProofSize = 736

// Foreign is the pair of foreign entry points.
type Foreign interface {
	// Prove receives a pointer to NUL-terminated UTF-8 JSON. The text is
	// only valid for the duration of the call. A nil result means failure.
	Prove(input *byte) unsafe.Pointer

	// FreeProof releases a non-nil pointer returned by Prove.
	FreeProof(p unsafe.Pointer)
}

// LengthReporter is implemented by foreign layers that can report the size
// of a result buffer. When present the bridge checks it against ProofSize
// before copying.
type LengthReporter interface {
	ProofLen(p unsafe.Pointer) int
}
