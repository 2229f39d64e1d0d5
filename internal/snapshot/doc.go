// Package snapshot reads and writes portable copies of a space's posts.
//
// A snapshot is a JSON document holding the space metadata and its encrypted
// posts. It can be handed to another member, who merges it into their own copy
// of the space. Snapshots never contain the space secret, so a snapshot on
// its own reveals nothing but post ids, authors and timestamps.
package snapshot
