package workflows

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/hush/internal/clock"
	"github.com/PolarWolf314/hush/internal/configs"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/secrets"
	"github.com/PolarWolf314/hush/internal/spaces"

	"github.com/google/uuid"
)

// Clock supplies timestamps for new spaces and posts. Tests replace it.
var Clock clock.Clock = clock.Real()

// session is everything a workflow needs from local state: the identity, the
// registry loaded from the store, and the active space selection.
type session struct {
	identity *configs.Identity
	registry *spaces.Registry
	cipher   *secrets.Cipher
	active   string
}

// openSession loads identity and store. A store that fails to load is an
// error; it is never silently replaced.
func openSession() (*session, error) {
	if err := ensureSettings(); err != nil {
		return nil, err
	}

	identity, err := configs.EnsureIdentity()
	if err != nil {
		return nil, fmt.Errorf("loading identity: %w", err)
	}

	store, err := configs.LoadStore()
	if err != nil {
		return nil, fmt.Errorf("loading spaces: %w", err)
	}

	list, err := store.ToSpaces()
	if err != nil {
		return nil, fmt.Errorf("loading spaces: %w", err)
	}

	registry := spaces.NewRegistry(spaces.Options{Clock: Clock})
	if err := registry.Load(list); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidStore, err)
	}

	s := &session{
		identity: identity,
		registry: registry,
		cipher:   secrets.NewCipher(nil),
		active:   store.Active,
	}
	if _, err := registry.Get(s.active); err != nil {
		s.active = ""
	}
	return s, nil
}

// save writes the registry and active selection back to the store.
func (s *session) save() error {
	return configs.SaveStore(configs.StoreFromSpaces(s.active, s.registry.List()))
}

// resolve maps a user-supplied space reference to a known space id. An empty
// reference means the active space. Otherwise an exact id wins, then a unique
// id prefix.
func (s *session) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if s.active == "" {
			return "", kerrors.ErrNoActiveSpace
		}
		return s.active, nil
	}

	if _, err := s.registry.Get(ref); err == nil {
		return ref, nil
	}

	var match string
	for _, space := range s.registry.List() {
		if strings.HasPrefix(space.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %q matches more than one space", kerrors.ErrSpaceNotFound, ref)
			}
			match = space.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", kerrors.ErrSpaceNotFound, ref)
	}
	return match, nil
}

func newPostID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: %v", kerrors.ErrEntropyUnavailable, err)
	}
	return id.String(), nil
}
