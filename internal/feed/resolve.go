package feed

import (
	"cmp"
	"context"
	"runtime"
	"slices"

	"github.com/PolarWolf314/hush/internal/secrets"

	"golang.org/x/sync/errgroup"
)

// ResolveVisible decrypts every post independently and returns them sorted by
// CreatedAt descending, ties broken by ID ascending.
//
// A post that fails to decrypt, for any reason, comes back with
// DecryptionFailed set and UndecryptablePlaceholder as its text; the other
// posts are unaffected. The slice is returned only once every attempt has
// finished. The only error is ctx being done, in which case no posts are
// returned.
func ResolveVisible(ctx context.Context, c *secrets.Cipher, key *secrets.Key, posts []EncryptedPost) ([]VisiblePost, error) {
	visible := make([]VisiblePost, len(posts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range posts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			visible[i] = open(c, key, posts[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	SortVisible(visible)
	return visible, nil
}

func open(c *secrets.Cipher, key *secrets.Key, p EncryptedPost) VisiblePost {
	plaintext, err := c.Decrypt(key, p.Ciphertext, p.Nonce)
	if err != nil {
		return VisiblePost{EncryptedPost: p, Plaintext: UndecryptablePlaceholder, DecryptionFailed: true}
	}
	return VisiblePost{EncryptedPost: p, Plaintext: string(plaintext)}
}

// SortVisible orders posts newest first, breaking ties by ascending ID.
func SortVisible(posts []VisiblePost) {
	slices.SortFunc(posts, func(a, b VisiblePost) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Failed counts posts that could not be decrypted.
func Failed(posts []VisiblePost) int {
	n := 0
	for _, p := range posts {
		if p.DecryptionFailed {
			n++
		}
	}
	return n
}
