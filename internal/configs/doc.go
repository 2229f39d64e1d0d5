// Package configs manages hush's local settings, identity and space store.
//
// # Settings
//
// Settings are resolved once at startup by InitSettings. Two directories are
// used, each overridable from the environment:
//
//   - HUSH_CONFIG_DIR: identity.toml (defaults to <user config dir>/hush)
//   - HUSH_DATA_DIR: spaces.toml and activity.jsonl (defaults to
//     $XDG_DATA_HOME/hush or ~/.local/share/hush)
//
// # Identity
//
// The identity is a random id plus a display name, created on first use with
// the OS username as its name. It is persisted by default. Turning persistence
// off clears the stored id and name and keeps only the preference, so every
// later run gets a fresh ephemeral identity.
//
// # Store
//
// The store is a TOML document with one [[space]] table per known space and
// nested [[space.post]] tables for its encrypted posts. Ciphertexts and
// nonces are base64. The store also holds the space secrets, so it is
// written with mode 0600, and always atomically through SaveTOML.
package configs
