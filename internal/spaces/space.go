package spaces

import (
	"slices"

	"github.com/PolarWolf314/hush/internal/feed"
)

// ExternalOwner is the OwnerID of spaces that were joined rather than created.
const ExternalOwner = "external"

// MaxNameLength bounds space names.
const MaxNameLength = 80

// Space is a group sharing one key and one post feed. ID never changes once
// assigned; Secret changes only through Join.
type Space struct {
	ID          string
	Name        string
	Description string
	// CreatedAt is unix milliseconds.
	CreatedAt int64
	OwnerID   string
	Secret    string
	Posts     []feed.EncryptedPost
}

// Joined reports whether the space came from an invite rather than local creation.
func (s Space) Joined() bool {
	return s.OwnerID == ExternalOwner
}

func (s Space) clone() Space {
	s.Posts = slices.Clone(s.Posts)
	return s
}

func placeholderName(id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return "Space " + short
}
