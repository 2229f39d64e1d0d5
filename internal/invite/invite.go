// Package invite packs a space id and its secret into a shareable invite code.
//
// A code is "<spaceID>:<secret>". Older codes used "|" between the parts;
// Decode still accepts them. Neither part may contain an accepted separator.
package invite

import (
	"fmt"
	"strings"

	kerrors "github.com/PolarWolf314/hush/internal/errors"
)

// Separator is the canonical separator written by Encode.
const Separator = ":"

// LegacySeparator is accepted by Decode only.
const LegacySeparator = "|"

// Separators lists every separator Decode accepts, in the order they are tried.
// The set is closed.
var Separators = []string{Separator, LegacySeparator}

// Encode joins spaceID and secret with the canonical separator.
func Encode(spaceID, secret string) (string, error) {
	if err := checkPart("space id", spaceID); err != nil {
		return "", err
	}
	if err := checkPart("secret", secret); err != nil {
		return "", err
	}
	return spaceID + Separator + secret, nil
}

// Decode splits an invite code into its space id and secret. It splits on the
// first occurrence of the highest-priority separator present in the code.
func Decode(code string) (spaceID, secret string, err error) {
	code = strings.TrimSpace(code)

	for _, sep := range Separators {
		id, rest, found := strings.Cut(code, sep)
		if !found {
			continue
		}
		id = strings.TrimSpace(id)
		rest = strings.TrimSpace(rest)
		if id == "" || rest == "" {
			return "", "", fmt.Errorf("%w: missing space id or secret", kerrors.ErrInvalidInviteFormat)
		}
		return id, rest, nil
	}

	return "", "", fmt.Errorf("%w: no separator found", kerrors.ErrInvalidInviteFormat)
}

func checkPart(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty %s", kerrors.ErrInvalidInviteFormat, name)
	}
	for _, sep := range Separators {
		if strings.Contains(value, sep) {
			return fmt.Errorf("%w: %s contains %q", kerrors.ErrInvalidInviteFormat, name, sep)
		}
	}
	return nil
}
