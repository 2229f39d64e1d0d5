package feed

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/secrets"
)

// MaxPostLength is the largest post body, in bytes, Compose accepts.
const MaxPostLength = 4096

// UndecryptablePlaceholder replaces the body of a post that failed to decrypt.
const UndecryptablePlaceholder = "[unable to decrypt this post]"

// EncryptedPost is a post as stored and exchanged. It is never modified after
// creation, and ID is unique within its space.
type EncryptedPost struct {
	ID         string `json:"id" toml:"id"`
	AuthorID   string `json:"authorId" toml:"author_id"`
	AuthorName string `json:"authorName" toml:"author_name"`
	Ciphertext []byte `json:"ciphertext" toml:"-"`
	Nonce      []byte `json:"nonce" toml:"-"`
	// CreatedAt is unix milliseconds, supplied by the poster.
	CreatedAt int64 `json:"createdAt" toml:"created_at"`
}

// VisiblePost is an EncryptedPost with its decryption outcome. It is derived
// on demand and never persisted.
type VisiblePost struct {
	EncryptedPost
	Plaintext        string
	DecryptionFailed bool
}

// Draft holds everything needed to create a post. The caller supplies the id
// and timestamp so that post creation stays deterministic under test.
type Draft struct {
	ID         string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  int64
}

// Compose encrypts a draft into a new EncryptedPost.
func Compose(c *secrets.Cipher, key *secrets.Key, d Draft) (EncryptedPost, error) {
	if strings.TrimSpace(d.Text) == "" {
		return EncryptedPost{}, kerrors.ErrEmptyPost
	}
	if len(d.Text) > MaxPostLength {
		return EncryptedPost{}, fmt.Errorf("%w: %d bytes, limit is %d", kerrors.ErrPostTooLong, len(d.Text), MaxPostLength)
	}

	ciphertext, nonce, err := c.Encrypt(key, []byte(d.Text))
	if err != nil {
		return EncryptedPost{}, fmt.Errorf("encrypting post: %w", err)
	}

	return EncryptedPost{
		ID:         d.ID,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		CreatedAt:  d.CreatedAt,
	}, nil
}
