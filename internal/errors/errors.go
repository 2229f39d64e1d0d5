package errors

import "errors"

// Key material errors indicate problems producing or reading space secrets.
var (
	// ErrEntropyUnavailable indicates the random source could not supply bytes.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrMalformedSecret indicates a secret string does not decode to a valid key.
	ErrMalformedSecret = errors.New("malformed space secret")

	// ErrInvalidInviteFormat indicates an invite code could not be split into id and secret.
	ErrInvalidInviteFormat = errors.New("invalid invite code format")
)

// Cryptographic errors indicate failures while opening a post.
var (
	// ErrAuthenticationFailed indicates the ciphertext did not verify under the key.
	ErrAuthenticationFailed = errors.New("post authentication failed")

	// ErrMalformedCiphertext indicates the ciphertext or nonce has an impossible shape.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

// Space errors indicate problems with the registry or its records.
var (
	// ErrSpaceNotFound indicates no space with the given id is known locally.
	ErrSpaceNotFound = errors.New("space not found")

	// ErrNoActiveSpace indicates an operation needs a space but none was selected.
	ErrNoActiveSpace = errors.New("no active space selected")

	// ErrInvalidSpaceName indicates the space name is blank or too long.
	ErrInvalidSpaceName = errors.New("invalid space name")
)

// Post errors indicate the draft cannot become a post.
var (
	// ErrEmptyPost indicates the post body is blank.
	ErrEmptyPost = errors.New("post is empty")

	// ErrPostTooLong indicates the post body exceeds the maximum length.
	ErrPostTooLong = errors.New("post is too long")
)

// Import and storage errors indicate untrusted data failed validation.
var (
	// ErrInvalidSnapshot indicates a snapshot payload is structurally invalid.
	ErrInvalidSnapshot = errors.New("invalid snapshot")

	// ErrSnapshotSpaceMismatch indicates the snapshot belongs to a different space.
	ErrSnapshotSpaceMismatch = errors.New("snapshot belongs to a different space")

	// ErrInvalidStore indicates the local space store could not be decoded.
	ErrInvalidStore = errors.New("local space store is invalid")
)

// Identity errors.
var (
	// ErrInvalidDisplayName indicates the display name is blank or too long.
	ErrInvalidDisplayName = errors.New("invalid display name")
)

// Input errors.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD form.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
