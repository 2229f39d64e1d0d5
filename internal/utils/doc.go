// Package utils provides shared helpers for the hush CLI.
//
// # System Utilities
//
//   - GetUsername: returns the current system username, used as the default
//     display name
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data such as an invite code or post text
//   - WriteFile: writes snapshot files with private permissions
//
// # Terminal Utilities
//
//   - ReadHidden: prompts for an invite code without echoing it
//   - IsTerminal: checks whether stdin is interactive
//
// # String Utilities
//
//   - Pluralize: formats counts for output
package utils
