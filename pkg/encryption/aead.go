// Package encryption is the AEAD facade consumed by the rotation engine.
// It wraps XChaCha20-Poly1305 behind the keyed one-shot Seal/Open
// contract; the cipher itself is a black box and nonce uniqueness per
// key is the caller's obligation.
package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// KeySize is the XChaCha20-Poly1305 key length in bytes.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the extended 24-byte nonce length.
	NonceSize = chacha20poly1305.NonceSizeX
	// TagSize is the Poly1305 authentication tag length.
	TagSize = chacha20poly1305.Overhead
)

var (
	// ErrInvalidKey reports key material of the wrong width.
	ErrInvalidKey = fmt.Errorf("encryption: key must be %d bytes", KeySize)
	// ErrInvalidNonce reports a nonce of the wrong width.
	ErrInvalidNonce = fmt.Errorf("encryption: nonce must be %d bytes", NonceSize)
	// ErrInvalidCiphertext reports input too short to carry a tag.
	ErrInvalidCiphertext = errors.New("encryption: ciphertext too short")
	// ErrAuthenticationFailed reports a failed tag check. Propagated to
	// callers unchanged; every AEAD failure collapses into this value so
	// decryption errors stay indistinguishable.
	ErrAuthenticationFailed = errors.New("encryption: authentication failed")
)

// Seal encrypts and authenticates plaintext under key and nonce, binding
// associatedData into the tag. Returns ciphertext with the tag appended.
func Seal(key, nonce, plaintext, associatedData []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}
	return aead.Seal(nil, nonce, plaintext, associatedData), nil
}

// Open verifies and decrypts ciphertextWithTag produced by Seal with the
// same key, nonce, and associated data.
func Open(key, nonce, ciphertextWithTag, associatedData []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonce
	}
	if len(ciphertextWithTag) < TagSize {
		return nil, ErrInvalidCiphertext
	}
	plaintext, err := aead.Open(nil, nonce, ciphertextWithTag, associatedData)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// RandomNonce draws a fresh 24-byte nonce from the system entropy
// source. At the extended nonce size, random nonces are collision-safe
// for any realistic message volume per key.
func RandomNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return aead, nil
}
