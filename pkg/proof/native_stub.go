//go:build !cgo || !libproof

package proof

// Native is a stub for builds without the foreign archive.
func Native() (Foreign, error) {
	return nil, ErrNotLinked
}
