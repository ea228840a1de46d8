package encryption

import (
	"bytes"
	"errors"
	"testing"
)

func testKey(label byte) []byte {
	return bytes.Repeat([]byte{label}, KeySize)
}

// TestSealOpen_RoundTrip verifies basic encrypt/decrypt symmetry
func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(0x01)
	nonce, err := RandomNonce()
	if err != nil {
		t.Fatalf("RandomNonce failed: %v", err)
	}
	plaintext := []byte("session payload")
	ad := []byte("window=3")

	ct, err := Seal(key, nonce, plaintext, ad)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if len(ct) != len(plaintext)+TagSize {
		t.Errorf("Expected %d ciphertext bytes, got %d", len(plaintext)+TagSize, len(ct))
	}

	got, err := Open(key, nonce, ct, ad)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("Round trip mismatch: got %q", got)
	}
}

// TestSealOpen_EmptyPlaintext round-trips a zero-length message
func TestSealOpen_EmptyPlaintext(t *testing.T) {
	key := testKey(0x02)
	nonce, _ := RandomNonce()

	ct, err := Seal(key, nonce, nil, nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}
	if len(ct) != TagSize {
		t.Errorf("Empty plaintext should seal to tag only, got %d bytes", len(ct))
	}

	got, err := Open(key, nonce, ct, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty plaintext, got %d bytes", len(got))
	}
}

// TestOpen_Tampered verifies any bit flip fails authentication
func TestOpen_Tampered(t *testing.T) {
	key := testKey(0x03)
	nonce, _ := RandomNonce()

	ct, err := Seal(key, nonce, []byte("integrity matters"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	for _, pos := range []int{0, len(ct) / 2, len(ct) - 1} {
		tampered := append([]byte(nil), ct...)
		tampered[pos] ^= 0x01
		if _, err := Open(key, nonce, tampered, nil); !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("Flip at %d: expected ErrAuthenticationFailed, got %v", pos, err)
		}
	}
}

// TestOpen_WrongKey fails authentication under a different key
func TestOpen_WrongKey(t *testing.T) {
	nonce, _ := RandomNonce()
	ct, err := Seal(testKey(0x04), nonce, []byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(testKey(0x05), nonce, ct, nil); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

// TestOpen_WrongAssociatedData fails when the bound context changes
func TestOpen_WrongAssociatedData(t *testing.T) {
	key := testKey(0x06)
	nonce, _ := RandomNonce()

	ct, err := Seal(key, nonce, []byte("secret"), []byte("window=1"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := Open(key, nonce, ct, []byte("window=2")); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("Expected ErrAuthenticationFailed, got %v", err)
	}
}

// TestSealOpen_SizeValidation rejects malformed key, nonce, and ciphertext
func TestSealOpen_SizeValidation(t *testing.T) {
	nonce, _ := RandomNonce()

	if _, err := Seal(make([]byte, 16), nonce, nil, nil); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
	if _, err := Seal(testKey(0x07), make([]byte, 12), nil, nil); !errors.Is(err, ErrInvalidNonce) {
		t.Errorf("Expected ErrInvalidNonce, got %v", err)
	}
	if _, err := Open(testKey(0x07), nonce, make([]byte, TagSize-1), nil); !errors.Is(err, ErrInvalidCiphertext) {
		t.Errorf("Expected ErrInvalidCiphertext, got %v", err)
	}
}

// TestRandomNonce_Unique verifies nonces do not repeat
func TestRandomNonce_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		nonce, err := RandomNonce()
		if err != nil {
			t.Fatalf("RandomNonce failed: %v", err)
		}
		if len(nonce) != NonceSize {
			t.Fatalf("Expected %d-byte nonce, got %d", NonceSize, len(nonce))
		}
		if seen[string(nonce)] {
			t.Fatal("Nonce repeated")
		}
		seen[string(nonce)] = true
	}
}
