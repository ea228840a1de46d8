package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/crypto/chacha20poly1305"
)

// Engine binds one key to an automatic nonce discipline: a 16-byte
// random prefix plus a 64-bit big-endian counter fills the 24-byte
// extended nonce, so one engine can seal ~2^64 frames with no nonce
// reuse. Frames are self-contained: nonce || ciphertext || tag.
//
// The engine holds expanded cipher state and cannot be zeroized; create
// one per window and drop it at rotation.
type Engine struct {
	aead   cipher.AEAD
	prefix [16]byte
	seq    atomic.Uint64
}

// NewEngine creates an engine from a 32-byte key.
func NewEngine(key []byte) (*Engine, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrInvalidKey
	}
	e := &Engine{aead: aead}
	if _, err := io.ReadFull(rand.Reader, e.prefix[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce prefix: %w", err)
	}
	return e, nil
}

func (e *Engine) nextNonce() []byte {
	seq := e.seq.Add(1)
	nonce := make([]byte, NonceSize)
	copy(nonce[:16], e.prefix[:])
	binary.BigEndian.PutUint64(nonce[16:], seq)
	return nonce
}

// SealFrame encrypts plaintext into a self-contained frame:
// nonce (24 bytes) || ciphertext || tag (16 bytes).
func (e *Engine) SealFrame(plaintext, associatedData []byte) []byte {
	nonce := e.nextNonce()
	out := make([]byte, 0, NonceSize+len(plaintext)+TagSize)
	out = append(out, nonce...)
	return e.aead.Seal(out, nonce, plaintext, associatedData)
}

// OpenFrame verifies and decrypts a frame produced by SealFrame.
func (e *Engine) OpenFrame(frame, associatedData []byte) ([]byte, error) {
	if len(frame) < NonceSize+TagSize {
		return nil, ErrInvalidCiphertext
	}
	nonce := frame[:NonceSize]
	plaintext, err := e.aead.Open(nil, nonce, frame[NonceSize:], associatedData)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
