package encryption

import (
	"fmt"

	"github.com/golang/snappy"
)

// SealCompressed snappy-compresses plaintext before sealing it into a
// frame. Compression happens strictly before encryption; ciphertext is
// incompressible.
func (e *Engine) SealCompressed(plaintext, associatedData []byte) []byte {
	compressed := snappy.Encode(nil, plaintext)
	return e.SealFrame(compressed, associatedData)
}

// OpenCompressed reverses SealCompressed.
func (e *Engine) OpenCompressed(frame, associatedData []byte) ([]byte, error) {
	compressed, err := e.OpenFrame(frame, associatedData)
	if err != nil {
		return nil, err
	}
	plaintext, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("encryption: decompression failed: %w", err)
	}
	return plaintext, nil
}
