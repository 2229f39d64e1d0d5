// Package feed turns collections of encrypted posts into a readable feed.
//
// Reconcile merges two collections for the same space into one, deduplicated
// by post ID with the local copy winning. ResolveVisible decrypts a collection
// under a space key and returns it in display order. Both are pure: they return
// new slices and never modify their inputs, so a result the caller abandons
// leaves no trace.
//
// Decryption failures are contained per post. A post sealed under another key
// shows up flagged with a placeholder body instead of failing the whole feed.
package feed
