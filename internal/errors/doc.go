// Package errors provides typed error values for hush.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Key material errors: ErrEntropyUnavailable, ErrMalformedSecret, ErrInvalidInviteFormat
//   - Crypto errors: ErrAuthenticationFailed, ErrMalformedCiphertext
//   - Space errors: ErrSpaceNotFound, ErrNoActiveSpace, ErrInvalidSpaceName
//   - Import errors: ErrInvalidSnapshot, ErrSnapshotSpaceMismatch, ErrInvalidStore
//
// # Propagation
//
// Format errors (ErrMalformedSecret, ErrInvalidInviteFormat, ErrInvalidSnapshot) abort
// the operation before any state changes. ErrAuthenticationFailed is contained per post
// by the feed package and surfaces as a flagged post, never as a failed feed.
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("importing secret for space %s: %w", id, errors.ErrMalformedSecret)
package errors
