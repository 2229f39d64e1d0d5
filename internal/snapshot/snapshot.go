package snapshot

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/spaces"
)

// Meta describes the space a snapshot was taken from. It never carries the
// space secret.
type Meta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Snapshot is the portable form of a space's posts.
type Snapshot struct {
	Meta  Meta                 `json:"meta"`
	Posts []feed.EncryptedPost `json:"posts"`
}

// Export renders the posts of space as an indented JSON snapshot.
func Export(space spaces.Space) ([]byte, error) {
	posts := space.Posts
	if posts == nil {
		posts = []feed.EncryptedPost{}
	}
	snap := Snapshot{
		Meta: Meta{
			ID:          space.ID,
			Name:        space.Name,
			Description: space.Description,
		},
		Posts: posts,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// rawSnapshot mirrors Snapshot with every field left undecoded so that shape
// errors are reported before any value is trusted.
type rawSnapshot struct {
	Meta  *rawMeta          `json:"meta"`
	Posts []json.RawMessage `json:"posts"`
}

type rawMeta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type rawPost struct {
	ID         *string         `json:"id"`
	AuthorID   string          `json:"authorId"`
	AuthorName string          `json:"authorName"`
	Ciphertext *string         `json:"ciphertext"`
	Nonce      *string         `json:"nonce"`
	CreatedAt  json.RawMessage `json:"createdAt"`
}

// Parse validates and decodes a snapshot. Any structural problem is reported
// as ErrInvalidSnapshot and no partial result is returned.
func Parse(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, invalid("top level must be an object")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, invalid("%v", err)
	}
	postsRaw, ok := top["posts"]
	if !ok {
		return nil, invalid("missing posts")
	}
	if p := bytes.TrimSpace(postsRaw); len(p) == 0 || p[0] != '[' {
		return nil, invalid("posts must be an array")
	}

	var raw rawSnapshot
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, invalid("%v", err)
	}

	snap := &Snapshot{Posts: make([]feed.EncryptedPost, 0, len(raw.Posts))}
	if raw.Meta != nil {
		snap.Meta = Meta{
			ID:          strings.TrimSpace(raw.Meta.ID),
			Name:        raw.Meta.Name,
			Description: raw.Meta.Description,
		}
	}

	seen := make(map[string]struct{}, len(raw.Posts))
	for i, msg := range raw.Posts {
		post, err := parsePost(msg)
		if err != nil {
			return nil, invalid("post %d: %v", i, err)
		}
		if _, dup := seen[post.ID]; dup {
			return nil, invalid("post %d: duplicate id %q", i, post.ID)
		}
		seen[post.ID] = struct{}{}
		snap.Posts = append(snap.Posts, post)
	}

	return snap, nil
}

func parsePost(msg json.RawMessage) (feed.EncryptedPost, error) {
	if m := bytes.TrimSpace(msg); len(m) == 0 || m[0] != '{' {
		return feed.EncryptedPost{}, fmt.Errorf("must be an object")
	}

	var p rawPost
	if err := json.Unmarshal(msg, &p); err != nil {
		return feed.EncryptedPost{}, err
	}

	if p.ID == nil || strings.TrimSpace(*p.ID) == "" {
		return feed.EncryptedPost{}, fmt.Errorf("missing id")
	}
	ciphertext, err := decodeField("ciphertext", p.Ciphertext)
	if err != nil {
		return feed.EncryptedPost{}, err
	}
	nonce, err := decodeField("nonce", p.Nonce)
	if err != nil {
		return feed.EncryptedPost{}, err
	}
	if len(p.CreatedAt) == 0 || string(p.CreatedAt) == "null" {
		return feed.EncryptedPost{}, fmt.Errorf("missing createdAt")
	}
	createdAt, err := strconv.ParseInt(string(p.CreatedAt), 10, 64)
	if err != nil {
		return feed.EncryptedPost{}, fmt.Errorf("createdAt must be an integer")
	}

	return feed.EncryptedPost{
		ID:         *p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Ciphertext: ciphertext,
		Nonce:      nonce,
		CreatedAt:  createdAt,
	}, nil
}

func decodeField(name string, value *string) ([]byte, error) {
	if value == nil || *value == "" {
		return nil, fmt.Errorf("missing %s", name)
	}
	b, err := base64.StdEncoding.DecodeString(*value)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid base64", name)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("empty %s", name)
	}
	return b, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", kerrors.ErrInvalidSnapshot, fmt.Sprintf(format, args...))
}
