package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/hush/internal/errors"

	"golang.org/x/crypto/nacl/secretbox"
)

// NonceSize is the secretbox nonce length.
const NonceSize = 24

// Cipher seals and opens post bodies with NaCl secretbox.
type Cipher struct {
	rand io.Reader
}

// NewCipher returns a Cipher drawing nonces from r, or from crypto/rand when r is nil.
func NewCipher(r io.Reader) *Cipher {
	if r == nil {
		r = rand.Reader
	}
	return &Cipher{rand: r}
}

// Encrypt seals plaintext under key with a fresh random nonce. The nonce is
// returned separately and is not secret.
func (c *Cipher) Encrypt(key *Key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	if key == nil {
		return nil, nil, fmt.Errorf("%w: missing key", kerrors.ErrMalformedCiphertext)
	}

	var n [NonceSize]byte
	if _, err := io.ReadFull(c.rand, n[:]); err != nil {
		return nil, nil, fmt.Errorf("%w: nonce: %v", kerrors.ErrEntropyUnavailable, err)
	}

	ciphertext = secretbox.Seal(nil, plaintext, &n, &key.material)
	return ciphertext, n[:], nil
}

// Decrypt opens ciphertext sealed by Encrypt. A tag that does not verify
// returns ErrAuthenticationFailed; inputs with an impossible shape return
// ErrMalformedCiphertext.
func (c *Cipher) Decrypt(key *Key, ciphertext, nonce []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: missing key", kerrors.ErrMalformedCiphertext)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce must be %d bytes, got %d", kerrors.ErrMalformedCiphertext, NonceSize, len(nonce))
	}
	if len(ciphertext) < secretbox.Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than %d bytes", kerrors.ErrMalformedCiphertext, secretbox.Overhead)
	}

	var n [NonceSize]byte
	copy(n[:], nonce)

	plaintext, ok := secretbox.Open(nil, ciphertext, &n, &key.material)
	if !ok {
		return nil, kerrors.ErrAuthenticationFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}
