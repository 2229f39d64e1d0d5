package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/utils"

	"github.com/google/uuid"
)

// MaxDisplayNameLength bounds display names, counted in characters.
const MaxDisplayNameLength = 64

// fallbackDisplayName is used when the OS user cannot be determined.
const fallbackDisplayName = "anonymous"

// Identity is the local participant: an id stamped on every post and the name
// shown next to it.
type Identity struct {
	ID          string `toml:"id"`
	DisplayName string `toml:"display_name"`
	// Persist reports whether the identity survives between runs.
	Persist bool `toml:"persist"`
}

type identityFile struct {
	Identity Identity `toml:"identity"`
}

// GenerateIdentityID generates a new identity id.
func GenerateIdentityID() string {
	return uuid.New().String()
}

// ValidateDisplayName trims name and checks its length.
func ValidateDisplayName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxDisplayNameLength {
		return "", fmt.Errorf("%w: must be 1-%d characters", kerrors.ErrInvalidDisplayName, MaxDisplayNameLength)
	}
	return name, nil
}

// LoadIdentity reads the identity file. A missing file yields (nil, nil).
func LoadIdentity() (*Identity, error) {
	var file identityFile
	if err := LoadTOML(HushSettings.IdentityPath(), &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}
	return &file.Identity, nil
}

// SaveIdentity writes id when it is persisted. When persistence is off the
// stored id and name are forgotten and only the preference is kept, so later
// runs stay ephemeral too.
func SaveIdentity(id *Identity) error {
	file := identityFile{Identity: *id}
	if !id.Persist {
		file.Identity = Identity{Persist: false}
	}

	if err := SaveTOML(HushSettings.IdentityPath(), file); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// EnsureIdentity returns the stored identity, creating one if needed. A new
// identity uses the OS username as display name and is persisted unless the
// user switched persistence off earlier.
func EnsureIdentity() (*Identity, error) {
	stored, err := LoadIdentity()
	if err != nil {
		return nil, err
	}
	if stored != nil && stored.Persist && stored.ID != "" {
		if stored.DisplayName == "" {
			stored.DisplayName = defaultDisplayName()
		}
		return stored, nil
	}

	id := &Identity{
		ID:          GenerateIdentityID(),
		DisplayName: defaultDisplayName(),
		Persist:     stored == nil || stored.Persist,
	}
	if id.Persist {
		if err := SaveIdentity(id); err != nil {
			return nil, err
		}
	}
	return id, nil
}

func defaultDisplayName() string {
	username, err := utils.GetUsername()
	if err != nil {
		return fallbackDisplayName
	}
	name, err := ValidateDisplayName(username)
	if err != nil {
		return fallbackDisplayName
	}
	return name
}
