package maze

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const (
	// SeedSize is the fixed width of a processed seed in bytes.
	SeedSize = 64

	// MinRawSeedSize is the minimum amount of caller-supplied entropy
	// accepted by NewSeed.
	MinRawSeedSize = 32
)

// Seed is a fixed-width, immutable value that fully determines a generated
// maze. Raw caller entropy is always processed through SHA3-512 so the
// generator never consumes attacker-shaped bytes directly.
type Seed [SeedSize]byte

// NewSeed processes raw entropy into a fixed-width seed.
// The raw input must carry at least MinRawSeedSize bytes.
func NewSeed(raw []byte) (Seed, error) {
	if len(raw) < MinRawSeedSize {
		return Seed{}, fmt.Errorf("%w: seed requires at least %d bytes, got %d",
			ErrInvalidParameter, MinRawSeedSize, len(raw))
	}
	return Seed(sha3.Sum512(raw)), nil
}

// RandomSeed draws a fresh seed from the system entropy source.
func RandomSeed() (Seed, error) {
	raw := make([]byte, SeedSize)
	if _, err := rand.Read(raw); err != nil {
		return Seed{}, fmt.Errorf("failed to read entropy: %w", err)
	}
	return NewSeed(raw)
}

// String returns a short hex prefix for logging. It never exposes the
// full seed value.
func (s Seed) String() string {
	return hex.EncodeToString(s[:4])
}
