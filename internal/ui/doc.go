// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("hush space join")          // Commands and code
//	ui.Path.Sprint("snapshot.json")            // File paths
//	ui.Success.Sprint("✓")                     // Success indicators
//	ui.Error.Sprint("✗")                       // Error indicators
//	ui.Warning.Sprint("rekeyed")               // Warnings
//	ui.Info.Sprint("→")                        // Informational hints
//	ui.Highlight.Sprint("Book club")           // User values
//	ui.Muted.Sprint("3 posts")                 // De-emphasized text
//	ui.Secret.Sprint(ui.Truncate(code))        // Invite codes, fingerprints
//
// # Secrets
//
// Invite codes carry the space key. They are printed in full only when the
// user explicitly asks; everywhere else Truncate keeps just enough of the
// code to recognise it.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - Muted: (parentheses)
//   - Secret: <angle brackets>
//   - Others: no decoration (self-evident from context)
package ui
