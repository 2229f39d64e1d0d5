package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/hush/internal/audit"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/invite"
	"github.com/PolarWolf314/hush/internal/spaces"
)

// CreateSpaceOptions configures the create workflow.
type CreateSpaceOptions struct {
	// Name is the display name of the space. Required.
	Name string

	// Description is optional free text.
	Description string
}

// CreateSpaceResult contains the outcome of creating a space.
type CreateSpaceResult struct {
	// Space is the new space, now active.
	Space spaces.Space

	// Invite is the code that lets others join. It carries the key.
	Invite string

	// Fingerprint identifies the new key without revealing it.
	Fingerprint string
}

// CreateSpace creates a space owned by the local identity with a fresh key and
// makes it the active space.
//
// Returns ErrInvalidSpaceName if the name is blank or too long.
// Returns ErrEntropyUnavailable if no key could be generated.
func CreateSpace(ctx context.Context, opts CreateSpaceOptions) (*CreateSpaceResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	space, err := s.registry.Create(opts.Name, opts.Description, s.identity.ID)
	if err != nil {
		return nil, err
	}

	code, err := s.registry.Invite(space.ID)
	if err != nil {
		return nil, fmt.Errorf("building invite: %w", err)
	}
	key, err := s.registry.Key(space.ID)
	if err != nil {
		return nil, err
	}

	s.active = space.ID
	if err := s.save(); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithIdentity("create", s.identity)
	auditEntry.SpaceID = space.ID
	auditEntry.SpaceName = space.Name
	auditEntry.Fingerprint = key.Fingerprint()
	audit.Log(auditEntry)

	return &CreateSpaceResult{
		Space:       *space,
		Invite:      code,
		Fingerprint: key.Fingerprint(),
	}, nil
}

// JoinSpaceOptions configures the join workflow.
type JoinSpaceOptions struct {
	// Code is the invite code, "<space id>:<secret>".
	Code string
}

// JoinSpaceResult contains the outcome of joining a space.
type JoinSpaceResult struct {
	// Space is the joined space, now active.
	Space spaces.Space

	// AlreadyKnown is true when the space was in the store before.
	AlreadyKnown bool

	// Rekeyed is true when a known space received a different secret.
	Rekeyed bool

	// Fingerprint identifies the key now bound to the space.
	Fingerprint string

	// PreviousFingerprint is set when Rekeyed is true.
	PreviousFingerprint string
}

// JoinSpace adds the space named by an invite code and makes it active.
// Joining a known space with a different secret replaces its key and keeps
// its posts; posts sealed under the old key will then show as undecryptable.
//
// Returns ErrInvalidInviteFormat or ErrMalformedSecret for bad codes, in
// which case nothing is stored.
func JoinSpace(ctx context.Context, opts JoinSpaceOptions) (*JoinSpaceResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	result := &JoinSpaceResult{}
	if id, _, err := invite.Decode(opts.Code); err == nil {
		if previous, err := s.registry.Key(id); err == nil {
			result.AlreadyKnown = true
			result.PreviousFingerprint = previous.Fingerprint()
		}
	}

	space, rekeyed, err := s.registry.Join(opts.Code)
	if err != nil {
		return nil, err
	}
	key, err := s.registry.Key(space.ID)
	if err != nil {
		return nil, err
	}

	result.Space = *space
	result.Rekeyed = rekeyed
	result.Fingerprint = key.Fingerprint()
	if !rekeyed {
		result.PreviousFingerprint = ""
	}

	s.active = space.ID
	if err := s.save(); err != nil {
		return nil, err
	}

	op := "join"
	if rekeyed {
		op = "rekey"
	}
	auditEntry := audit.LogWithIdentity(op, s.identity)
	auditEntry.SpaceID = space.ID
	auditEntry.SpaceName = space.Name
	auditEntry.Fingerprint = result.Fingerprint
	audit.Log(auditEntry)

	return result, nil
}

// SpaceSummary describes one space for listing.
type SpaceSummary struct {
	Space       spaces.Space
	PostCount   int
	Active      bool
	Fingerprint string
}

// ListSpacesResult contains every known space in the order it was added.
type ListSpacesResult struct {
	Spaces []SpaceSummary
}

// ListSpaces returns all known spaces.
func ListSpaces(ctx context.Context) (*ListSpacesResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	result := &ListSpacesResult{}
	for _, space := range s.registry.List() {
		key, err := s.registry.Key(space.ID)
		if err != nil {
			return nil, err
		}
		result.Spaces = append(result.Spaces, SpaceSummary{
			Space:       space,
			PostCount:   len(space.Posts),
			Active:      space.ID == s.active,
			Fingerprint: key.Fingerprint(),
		})
	}
	return result, nil
}

// UseSpaceOptions configures the use workflow.
type UseSpaceOptions struct {
	// SpaceID is a space id or a unique prefix of one.
	SpaceID string
}

// UseSpaceResult contains the newly active space.
type UseSpaceResult struct {
	Space spaces.Space
}

// UseSpace makes a known space the active one.
//
// Returns ErrSpaceNotFound if the reference matches no space.
func UseSpace(ctx context.Context, opts UseSpaceOptions) (*UseSpaceResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(opts.SpaceID) == "" {
		return nil, fmt.Errorf("%w: no space given", kerrors.ErrSpaceNotFound)
	}
	id, err := s.resolve(opts.SpaceID)
	if err != nil {
		return nil, err
	}
	space, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	s.active = id
	if err := s.save(); err != nil {
		return nil, err
	}
	return &UseSpaceResult{Space: *space}, nil
}

// ShowInviteOptions configures the invite workflow.
type ShowInviteOptions struct {
	// SpaceID selects the space; empty means the active space.
	SpaceID string
}

// ShowInviteResult contains the invite code of a space.
type ShowInviteResult struct {
	Space       spaces.Space
	Invite      string
	Fingerprint string
}

// ShowInvite returns the invite code for a space.
func ShowInvite(ctx context.Context, opts ShowInviteOptions) (*ShowInviteResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	id, err := s.resolve(opts.SpaceID)
	if err != nil {
		return nil, err
	}
	space, key, err := s.registry.Snapshot(id)
	if err != nil {
		return nil, err
	}
	code, err := s.registry.Invite(id)
	if err != nil {
		return nil, err
	}

	return &ShowInviteResult{
		Space:       *space,
		Invite:      code,
		Fingerprint: key.Fingerprint(),
	}, nil
}
