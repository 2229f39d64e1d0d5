// Package spaces keeps track of the spaces this device knows about.
//
// A Registry owns the ordered set of Space records together with the key bound
// to each one. A space enters the registry by Create (fresh key), Join (key
// from an invite code) or Load (records read back from the local store) and
// never leaves it. Joining a space that is already known replaces its secret
// and key but keeps its posts, which lets a member recover after the group
// moved to a new invite.
//
// The registry guarantees that the bound key always comes from the space's
// current secret: both are written together under one lock, and operations
// that fail validation change nothing.
package spaces
