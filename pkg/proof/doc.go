// Package proof invokes the foreign proof generator across its C ABI.
//
// The foreign module exports two functions:
//
//	unsigned char* Prove(char* input);   // NUL-terminated JSON request
//	void FreeProof(unsigned char* ptr);  // releases a Prove result
//
// A Bridge serializes a Request, calls Prove, copies the ProofSize bytes it
// returns into Go memory and hands the original buffer back to FreeProof
// exactly once. The buffer is never touched after release.
//
// The cgo binding is compiled only with the cgo and libproof build tags,
// together with the link file produced by "proofctl link --format cgo".
// Without them Native returns ErrNotLinked.
package proof
