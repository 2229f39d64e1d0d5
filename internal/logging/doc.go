// Package logger provides leveled logging for hush CLI commands.
//
// # Verbosity Levels
//
//   - --verbose: shows info and warning messages
//   - --debug: shows everything, including errors that are also rendered to the user
//
// Without flags only WarnfAlways output is shown.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Resolved %d posts", count)
//
// Commands create a logger in their PersistentPreRun and pass it to helpers.
// Secrets and post plaintext must never be passed to a Logger.
package logger
