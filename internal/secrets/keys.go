package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	kerrors "github.com/PolarWolf314/hush/internal/errors"

	"github.com/zeebo/blake3"
)

// KeySize is the length in bytes of a space key (the NaCl secretbox key size).
const KeySize = 32

// SecretLength is the length of a canonical secret string.
const SecretLength = 43

const fingerprintContext = "hush 2024 space key fingerprint"

var secretEncoding = base64.RawURLEncoding

// Key is the usable form of a space secret. The zero value is not a valid key.
type Key struct {
	material [KeySize]byte
}

// Fingerprint returns a short, non-reversible tag identifying the key.
// It is safe to display and log.
func (k *Key) Fingerprint() string {
	h := blake3.NewDeriveKey(fingerprintContext)
	_, _ = h.Write(k.material[:])
	return hex.EncodeToString(h.Sum(nil)[:6])
}

// Equal reports whether two keys hold the same material.
func (k *Key) Equal(other *Key) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.material == other.material
}

// KeyRing produces fresh keys from its random source.
type KeyRing struct {
	rand io.Reader
}

// NewKeyRing returns a KeyRing reading from r, or from crypto/rand when r is nil.
func NewKeyRing(r io.Reader) *KeyRing {
	if r == nil {
		r = rand.Reader
	}
	return &KeyRing{rand: r}
}

// Generate creates a new random key and returns it with its secret string.
func (kr *KeyRing) Generate() (*Key, string, error) {
	key := &Key{}
	if _, err := io.ReadFull(kr.rand, key.material[:]); err != nil {
		return nil, "", fmt.Errorf("%w: %v", kerrors.ErrEntropyUnavailable, err)
	}
	return key, EncodeSecret(key), nil
}

// EncodeSecret returns the canonical transport string for key: unpadded
// URL-safe base64 of the raw key bytes.
func EncodeSecret(key *Key) string {
	return secretEncoding.EncodeToString(key.material[:])
}

// ImportSecret parses a transport string back into a Key.
func ImportSecret(secret string) (*Key, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) != SecretLength {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", kerrors.ErrMalformedSecret, SecretLength, len(secret))
	}

	raw, err := secretEncoding.Strict().DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedSecret, err)
	}
	if len(raw) != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrMalformedSecret, KeySize, len(raw))
	}

	key := &Key{}
	copy(key.material[:], raw)
	wipe(raw)
	return key, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
