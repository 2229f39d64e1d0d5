// Package workflows provides high-level orchestration for hush commands.
//
// Workflows coordinate multiple operations across packages (configs, spaces,
// feed, snapshot, audit) to implement complete user-facing features. Each
// workflow handles a single command's business logic, independent of CLI
// concerns like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading the identity and the space store
//   - Resolving which space an operation targets
//   - Performing the core operation
//   - Saving the store and recording activity entries
//
// # Available Workflows
//
//   - CreateSpace, JoinSpace, ListSpaces, UseSpace, ShowInvite
//   - Post, Feed
//   - ExportSnapshot, ImportSnapshot
//   - ShowIdentity, SetDisplayName, SetPersist
//   - Activity
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Post(ctx, opts)
//	if errors.Is(err, kerrors.ErrNoActiveSpace) {
//	    // Suggest hush space use
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Feed passes it on to the concurrent decryption of posts.
package workflows
