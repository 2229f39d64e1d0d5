package configs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/spaces"
)

// Store is the on-disk form of every known space and the active selection.
type Store struct {
	Active  string        `toml:"active"`
	Records []SpaceRecord `toml:"space"`
}

// SpaceRecord is one space in the store.
type SpaceRecord struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	CreatedAt   int64        `toml:"created_at"`
	OwnerID     string       `toml:"owner_id"`
	Secret      string       `toml:"secret"`
	Posts       []PostRecord `toml:"post"`
}

// PostRecord is one encrypted post in the store. Binary fields are standard
// base64.
type PostRecord struct {
	ID         string `toml:"id"`
	AuthorID   string `toml:"author_id"`
	AuthorName string `toml:"author_name"`
	Ciphertext string `toml:"ciphertext"`
	Nonce      string `toml:"nonce"`
	CreatedAt  int64  `toml:"created_at"`
}

// StoreFromSpaces builds a Store from registry contents.
func StoreFromSpaces(active string, list []spaces.Space) *Store {
	store := &Store{Active: active, Records: make([]SpaceRecord, 0, len(list))}
	for _, s := range list {
		rec := SpaceRecord{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			CreatedAt:   s.CreatedAt,
			OwnerID:     s.OwnerID,
			Secret:      s.Secret,
			Posts:       make([]PostRecord, 0, len(s.Posts)),
		}
		for _, p := range s.Posts {
			rec.Posts = append(rec.Posts, PostRecord{
				ID:         p.ID,
				AuthorID:   p.AuthorID,
				AuthorName: p.AuthorName,
				Ciphertext: base64.StdEncoding.EncodeToString(p.Ciphertext),
				Nonce:      base64.StdEncoding.EncodeToString(p.Nonce),
				CreatedAt:  p.CreatedAt,
			})
		}
		store.Records = append(store.Records, rec)
	}
	return store
}

// ToSpaces converts the stored records back into spaces. Secrets are not
// validated here; the registry does that when the spaces are loaded.
func (s *Store) ToSpaces() ([]spaces.Space, error) {
	out := make([]spaces.Space, 0, len(s.Records))
	for _, rec := range s.Records {
		space := spaces.Space{
			ID:          rec.ID,
			Name:        rec.Name,
			Description: rec.Description,
			CreatedAt:   rec.CreatedAt,
			OwnerID:     rec.OwnerID,
			Secret:      rec.Secret,
			Posts:       make([]feed.EncryptedPost, 0, len(rec.Posts)),
		}
		for _, p := range rec.Posts {
			ciphertext, err := base64.StdEncoding.DecodeString(p.Ciphertext)
			if err != nil {
				return nil, fmt.Errorf("%w: space %s post %s: ciphertext: %v", kerrors.ErrInvalidStore, rec.ID, p.ID, err)
			}
			nonce, err := base64.StdEncoding.DecodeString(p.Nonce)
			if err != nil {
				return nil, fmt.Errorf("%w: space %s post %s: nonce: %v", kerrors.ErrInvalidStore, rec.ID, p.ID, err)
			}
			space.Posts = append(space.Posts, feed.EncryptedPost{
				ID:         p.ID,
				AuthorID:   p.AuthorID,
				AuthorName: p.AuthorName,
				Ciphertext: ciphertext,
				Nonce:      nonce,
				CreatedAt:  p.CreatedAt,
			})
		}
		out = append(out, space)
	}
	return out, nil
}

// LoadStore reads the store. A missing file yields an empty store.
func LoadStore() (*Store, error) {
	store := &Store{}
	if err := LoadTOML(HushSettings.StorePath(), store); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Store{}, nil
		}
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidStore, err)
	}
	return store, nil
}

// SaveStore atomically replaces the store file.
func SaveStore(store *Store) error {
	if err := SaveTOML(HushSettings.StorePath(), store); err != nil {
		return fmt.Errorf("failed to save spaces: %w", err)
	}
	return nil
}
