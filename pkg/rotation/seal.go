package rotation

import (
	"github.com/Rallt/Quantum-maze/pkg/encryption"
)

// Seal encrypts plaintext under the current window's key with a fresh
// random nonce and returns a self-contained frame:
// nonce || ciphertext || tag. Nonce uniqueness per key is this method's
// obligation, not the cipher's; at the 24-byte extended nonce size a
// fresh random nonce per call satisfies it.
func (s *Scheduler) Seal(plaintext, associatedData []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return nil, ErrNotActive
	}

	nonce, err := encryption.RandomNonce()
	if err != nil {
		return nil, err
	}
	ct, err := encryption.Seal(s.key.Bytes(), nonce, plaintext, associatedData)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(nonce)+len(ct))
	frame = append(frame, nonce...)
	frame = append(frame, ct...)
	return frame, nil
}

// OpenSealed decrypts a frame produced by Seal during the current
// window. Frames sealed under a rotated-out key fail authentication:
// that key no longer exists.
func (s *Scheduler) OpenSealed(frame, associatedData []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return nil, ErrNotActive
	}
	if len(frame) < encryption.NonceSize+encryption.TagSize {
		return nil, encryption.ErrInvalidCiphertext
	}
	return encryption.Open(s.key.Bytes(), frame[:encryption.NonceSize],
		frame[encryption.NonceSize:], associatedData)
}
