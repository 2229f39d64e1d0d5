// Package audit records what this device did with its spaces.
//
// Every state-changing operation (create, join, rekey, post, export, import,
// identity changes) is appended to a local activity log so the user can
// review what happened and when.
//
// # Log Format
//
// The log is stored as JSON Lines (one JSON object per line) at:
//
//	<data dir>/activity.jsonl
//
// Each entry contains:
//   - Timestamp (microseconds, UTC)
//   - Display name and identity id
//   - Operation name
//   - Operation-specific details (space id, key fingerprint, counts)
//
// Entries never contain secrets, invite codes or post text. A key fingerprint
// is enough to tell two keys apart without revealing either.
//
// # Usage
//
//	entry := audit.LogWithIdentity("post", identity)
//	entry.SpaceID = space.ID
//	audit.Log(entry)
//
// # Failure Handling
//
// Activity logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the log for display. Malformed entries are
// silently skipped to handle partial writes.
package audit
