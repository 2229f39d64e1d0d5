package ui

import "strings"

// TruncateKeep is how many characters Truncate keeps from each end.
const TruncateKeep = 6

// Truncate shortens a secret-bearing string for display, keeping the first
// and last TruncateKeep characters. Strings too short to shorten safely are
// fully masked.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= 3*TruncateKeep {
		return strings.Repeat("*", len(r))
	}
	return string(r[:TruncateKeep]) + "…" + string(r[len(r)-TruncateKeep:])
}
