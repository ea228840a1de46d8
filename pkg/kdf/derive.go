// Package kdf turns discovered maze paths and a master secret into
// fixed-width session keys via an extendable-output function. Derivation
// is deterministic for fixed inputs so a derivation can be independently
// verified; production inputs never repeat because the window index
// strictly increases and per-window path material changes.
package kdf

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
	"github.com/Rallt/Quantum-maze/pkg/pools"
)

// Domain separators keep the derivation, chaining, and maze-generation
// uses of the shared XOF primitive cryptographically independent.
const (
	deriveDomain = "qmaze/kdf/v1"
	chainDomain  = "qmaze/chain/v1"
)

var errNilInput = errors.New("kdf: nil derivation input")

// Deriver derives keys through a configurable XOF.
type Deriver struct {
	newXOF Factory
}

// NewDeriver returns a Deriver backed by SHAKE256.
func NewDeriver() *Deriver {
	return &Deriver{newXOF: NewShake}
}

// NewDeriverWithXOF returns a Deriver backed by a caller-supplied XOF.
func NewDeriverWithXOF(factory Factory) *Deriver {
	return &Deriver{newXOF: factory}
}

// EncodePath serializes a path with a fixed-width binary layout: a
// 4-byte big-endian cell count followed by three big-endian uint16
// coordinates per cell. No padding, no length-dependent ambiguity.
func EncodePath(path *navigator.Path) []byte {
	cells := path.Cells()
	b := pools.NewBufferBuilder(4 + 6*len(cells))
	b.WriteUint32BE(uint32(len(cells)))
	for _, c := range cells {
		b.WriteUint16BE(c.X)
		b.WriteUint16BE(c.Y)
		b.WriteUint16BE(c.Z)
	}
	return b.Bytes()
}

// Derive computes the session key for one window from the path, the
// master secret, and the window index. The path encoding is wiped before
// returning; only the derived key survives the call.
func (d *Deriver) Derive(path *navigator.Path, master *MasterSecret, windowIndex uint64) (*Key, error) {
	if path == nil || master == nil {
		return nil, errNilInput
	}

	xof := d.newXOF()
	xof.Write([]byte(deriveDomain))
	xof.Write(master.Bytes())

	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], windowIndex)
	xof.Write(idx[:])

	encoded := EncodePath(path)
	xof.Write(encoded)
	for i := range encoded {
		encoded[i] = 0
	}

	k := &Key{}
	if _, err := io.ReadFull(xof, k.b[:]); err != nil {
		return nil, err
	}
	return k, nil
}

// ChainSeed derives the next window's maze seed as a one-way function of
// the retiring key. Knowing the new seed reveals nothing about the
// retired key, which is what makes the rotation chain forward-secret.
func (d *Deriver) ChainSeed(retiring *Key, nextWindow uint64) (maze.Seed, error) {
	if retiring == nil {
		return maze.Seed{}, errNilInput
	}

	xof := d.newXOF()
	xof.Write([]byte(chainDomain))
	xof.Write(retiring.Bytes())

	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], nextWindow)
	xof.Write(idx[:])

	var seed maze.Seed
	if _, err := io.ReadFull(xof, seed[:]); err != nil {
		return maze.Seed{}, err
	}
	return seed, nil
}

// KeyFingerprint returns a short hex identifier for a key, safe for logs
// and audit records. It is a SHA3-512 prefix, not key material.
func KeyFingerprint(k *Key) string {
	if k == nil {
		return ""
	}
	sum := sha3.Sum512(k.Bytes())
	return hex.EncodeToString(sum[:4])
}
