package kdf

import (
	"crypto/subtle"
	"errors"
	"fmt"
)

const (
	// KeySize is the derived key width in bytes, matching the
	// XChaCha20-Poly1305 key length consumed by the AEAD facade.
	KeySize = 32

	// MinMasterSecretSize is the minimum accepted master secret length.
	MinMasterSecretSize = 16
)

var (
	// ErrMasterSecretTooShort reports an undersized master secret.
	ErrMasterSecretTooShort = errors.New("kdf: master secret too short")
	// ErrInvalidKeySize reports raw key material of the wrong width.
	ErrInvalidKeySize = errors.New("kdf: invalid key size")
)

// Key is a fixed-width derived secret. The backing array is owned by
// whoever holds the pointer; Zero overwrites it in place, so every
// handle to the same Key observes the zeroization.
type Key struct {
	b [KeySize]byte
}

// NewKey copies raw material into a Key. The input must be exactly
// KeySize bytes.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKeySize, KeySize, len(raw))
	}
	k := &Key{}
	copy(k.b[:], raw)
	return k, nil
}

// Bytes returns the live key material. The slice aliases the Key's
// backing array and becomes all-zero once Zero is called.
func (k *Key) Bytes() []byte {
	return k.b[:]
}

// Zero overwrites the key material in place.
func (k *Key) Zero() {
	for i := range k.b {
		k.b[i] = 0
	}
}

// IsZero reports whether every byte of the key is zero.
func (k *Key) IsZero() bool {
	var acc byte
	for _, v := range k.b {
		acc |= v
	}
	return acc == 0
}

// Equal compares two keys in constant time.
func (k *Key) Equal(o *Key) bool {
	if k == nil || o == nil {
		return k == o
	}
	return subtle.ConstantTimeCompare(k.b[:], o.b[:]) == 1
}

// Clone returns an independent copy of the key.
func (k *Key) Clone() *Key {
	c := &Key{}
	copy(c.b[:], k.b[:])
	return c
}

// MasterSecret is the long-lived derivation input supplied at engine
// initialization. It is never transmitted and is used only as KDF input;
// the engine zeroizes it at termination.
type MasterSecret struct {
	b []byte
}

// NewMasterSecret copies the secret, enforcing the minimum length.
func NewMasterSecret(raw []byte) (*MasterSecret, error) {
	if len(raw) < MinMasterSecretSize {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrMasterSecretTooShort, MinMasterSecretSize, len(raw))
	}
	b := make([]byte, len(raw))
	copy(b, raw)
	return &MasterSecret{b: b}, nil
}

// Bytes returns the live secret material.
func (m *MasterSecret) Bytes() []byte {
	return m.b
}

// Len returns the secret length in bytes.
func (m *MasterSecret) Len() int {
	return len(m.b)
}

// Zero overwrites the secret in place.
func (m *MasterSecret) Zero() {
	for i := range m.b {
		m.b[i] = 0
	}
}
