package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/hush/internal/audit"
	"github.com/PolarWolf314/hush/internal/configs"
)

// IdentityResult describes the local identity.
type IdentityResult struct {
	Identity configs.Identity

	// Previous holds the display name before a rename.
	Previous string

	// Changed is false when the request matched the current state.
	Changed bool
}

// ShowIdentity returns the local identity, creating it on first use.
func ShowIdentity(ctx context.Context) (*IdentityResult, error) {
	if err := ensureSettings(); err != nil {
		return nil, err
	}
	id, err := configs.EnsureIdentity()
	if err != nil {
		return nil, err
	}
	return &IdentityResult{Identity: *id}, nil
}

// SetDisplayNameOptions configures the rename workflow.
type SetDisplayNameOptions struct {
	Name string
}

// SetDisplayName changes the name shown on new posts. Existing posts keep
// the name they were written with.
//
// Returns ErrInvalidDisplayName if the name is blank or too long.
func SetDisplayName(ctx context.Context, opts SetDisplayNameOptions) (*IdentityResult, error) {
	name, err := configs.ValidateDisplayName(opts.Name)
	if err != nil {
		return nil, err
	}

	if err := ensureSettings(); err != nil {
		return nil, err
	}
	id, err := configs.EnsureIdentity()
	if err != nil {
		return nil, err
	}

	result := &IdentityResult{Previous: id.DisplayName, Changed: id.DisplayName != name}
	id.DisplayName = name
	if result.Changed && id.Persist {
		if err := configs.SaveIdentity(id); err != nil {
			return nil, err
		}
	}
	result.Identity = *id

	if result.Changed {
		auditEntry := audit.LogWithIdentity("identity", id)
		auditEntry.Detail = "rename"
		audit.Log(auditEntry)
	}
	return result, nil
}

// SetPersistOptions configures the persistence workflow.
type SetPersistOptions struct {
	Persist bool
}

// SetPersist switches identity persistence on or off. Switching it off
// forgets the stored identity; switching it on stores the current one.
func SetPersist(ctx context.Context, opts SetPersistOptions) (*IdentityResult, error) {
	if err := ensureSettings(); err != nil {
		return nil, err
	}
	id, err := configs.EnsureIdentity()
	if err != nil {
		return nil, err
	}

	result := &IdentityResult{Previous: id.DisplayName, Changed: id.Persist != opts.Persist}
	id.Persist = opts.Persist
	if err := configs.SaveIdentity(id); err != nil {
		return nil, err
	}
	result.Identity = *id

	if result.Changed {
		auditEntry := audit.LogWithIdentity("identity", id)
		auditEntry.Detail = fmt.Sprintf("persist=%t", opts.Persist)
		audit.Log(auditEntry)
	}
	return result, nil
}

func ensureSettings() error {
	if configs.HushSettings != nil {
		return nil
	}
	if err := configs.InitSettings(); err != nil {
		return fmt.Errorf("initializing settings: %w", err)
	}
	return nil
}
