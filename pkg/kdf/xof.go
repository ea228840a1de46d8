package kdf

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// XOF is the pluggable extendable-output function behind every
// derivation. Keeping it an interface isolates the engine from any
// single primitive choice: a future post-quantum construction only has
// to absorb written input and squeeze arbitrary-length output.
type XOF interface {
	io.Writer
	io.Reader
	Reset()
}

// Factory produces a fresh XOF instance per derivation.
type Factory func() XOF

// NewShake returns the default XOF, SHAKE256.
func NewShake() XOF {
	return sha3.NewShake256()
}
