package spaces

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PolarWolf314/hush/internal/clock"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/invite"
	"github.com/PolarWolf314/hush/internal/secrets"

	"github.com/google/uuid"
)

// Options configures a Registry. Zero values select production defaults.
type Options struct {
	KeyRing *secrets.KeyRing
	Clock   clock.Clock
	// NewID allocates space ids. Defaults to random UUIDs.
	NewID func() (string, error)
}

// Registry holds the known spaces and the key bound to each of them.
//
// Every space in the registry has exactly one key binding, produced by
// importing (or generating) that space's current secret. Records and bindings
// are always replaced together under the same lock.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	spaces   map[string]Space
	bindings map[string]*secrets.Key

	keyRing *secrets.KeyRing
	clock   clock.Clock
	newID   func() (string, error)
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts Options) *Registry {
	r := &Registry{
		spaces:   make(map[string]Space),
		bindings: make(map[string]*secrets.Key),
		keyRing:  opts.KeyRing,
		clock:    opts.Clock,
		newID:    opts.NewID,
	}
	if r.keyRing == nil {
		r.keyRing = secrets.NewKeyRing(nil)
	}
	if r.clock == nil {
		r.clock = clock.Real()
	}
	if r.newID == nil {
		r.newID = newUUID
	}
	return r
}

func newUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEntropyUnavailable, err)
	}
	return id.String(), nil
}

// Create makes a new space owned by ownerID with a freshly generated key.
func (r *Registry) Create(name, description, ownerID string) (*Space, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, fmt.Errorf("%w: must be 1-%d characters", kerrors.ErrInvalidSpaceName, MaxNameLength)
	}

	key, secret, err := r.keyRing.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating space key: %w", err)
	}

	id, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("allocating space id: %w", err)
	}

	space := Space{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   clock.Millis(r.clock.Now()),
		OwnerID:     ownerID,
		Secret:      secret,
		Posts:       []feed.EncryptedPost{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.spaces[id]; exists {
		return nil, fmt.Errorf("allocating space id: %s already in use", id)
	}
	r.bind(space, key)

	out := space.clone()
	return &out, nil
}

// Join adds the space named by an invite code, or rebinds an existing space to
// the secret it carries. An existing space keeps its name, description and
// posts; only its secret and key binding are replaced. The returned bool is
// true when an existing space received a different secret.
//
// Nothing is modified when the code or its secret is invalid.
func (r *Registry) Join(code string) (*Space, bool, error) {
	id, secret, err := invite.Decode(code)
	if err != nil {
		return nil, false, err
	}

	key, err := secrets.ImportSecret(secret)
	if err != nil {
		return nil, false, err
	}
	secret = secrets.EncodeSecret(key)

	r.mu.Lock()
	defer r.mu.Unlock()

	space, exists := r.spaces[id]
	rekeyed := exists && space.Secret != secret
	if exists {
		space.Secret = secret
	} else {
		space = Space{
			ID:        id,
			Name:      placeholderName(id),
			CreatedAt: clock.Millis(r.clock.Now()),
			OwnerID:   ExternalOwner,
			Secret:    secret,
			Posts:     []feed.EncryptedPost{},
		}
	}
	r.bind(space, key)

	out := space.clone()
	return &out, rekeyed, nil
}

// Load replaces the registry contents with spaces, importing every secret
// first. If any secret is malformed the registry is left unchanged.
func (r *Registry) Load(spaces []Space) error {
	order := make([]string, 0, len(spaces))
	records := make(map[string]Space, len(spaces))
	bindings := make(map[string]*secrets.Key, len(spaces))

	for _, s := range spaces {
		if s.ID == "" {
			return fmt.Errorf("%w: space without id", kerrors.ErrInvalidStore)
		}
		if _, dup := records[s.ID]; dup {
			return fmt.Errorf("%w: duplicate space %s", kerrors.ErrInvalidStore, s.ID)
		}
		key, err := secrets.ImportSecret(s.Secret)
		if err != nil {
			return fmt.Errorf("loading space %s: %w", s.ID, err)
		}
		s = s.clone()
		if s.Posts == nil {
			s.Posts = []feed.EncryptedPost{}
		}
		order = append(order, s.ID)
		records[s.ID] = s
		bindings[s.ID] = key
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.spaces = records
	r.bindings = bindings
	return nil
}

// bind stores space and its key together. Callers hold r.mu.
func (r *Registry) bind(space Space, key *secrets.Key) {
	if _, exists := r.spaces[space.ID]; !exists {
		r.order = append(r.order, space.ID)
	}
	r.spaces[space.ID] = space
	r.bindings[space.ID] = key
}

// SetPosts replaces the post collection of a space.
func (r *Registry) SetPosts(id string, posts []feed.EncryptedPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, ok := r.spaces[id]
	if !ok {
		return fmt.Errorf("%w: %s", kerrors.ErrSpaceNotFound, id)
	}
	space.Posts = append([]feed.EncryptedPost{}, posts...)
	r.spaces[id] = space
	return nil
}

// Get returns a copy of the space with the given id.
func (r *Registry) Get(id string) (*Space, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	space, ok := r.spaces[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSpaceNotFound, id)
	}
	out := space.clone()
	return &out, nil
}

// Key returns the key bound to the space with the given id.
func (r *Registry) Key(id string) (*secrets.Key, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.bindings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSpaceNotFound, id)
	}
	return key, nil
}

// Snapshot returns a space together with its key, read under one lock so the
// two always match.
func (r *Registry) Snapshot(id string) (*Space, *secrets.Key, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	space, ok := r.spaces[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", kerrors.ErrSpaceNotFound, id)
	}
	out := space.clone()
	return &out, r.bindings[id], nil
}

// Invite returns the invite code for a known space.
func (r *Registry) Invite(id string) (string, error) {
	space, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return invite.Encode(space.ID, space.Secret)
}

// List returns copies of all spaces in the order they were added.
func (r *Registry) List() []Space {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Space, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.spaces[id].clone())
	}
	return out
}

// Len returns the number of known spaces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
