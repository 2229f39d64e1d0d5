package feed

// Reconcile returns the union of local and incoming keyed by post ID. When both
// sides hold the same ID the local record is kept and the incoming one is
// dropped. Neither input is modified.
//
// The result lists local posts first, then incoming posts not already present.
// Callers must not rely on that order; use ResolveVisible for display order.
func Reconcile(local, incoming []EncryptedPost) []EncryptedPost {
	seen := make(map[string]struct{}, len(local)+len(incoming))
	merged := make([]EncryptedPost, 0, len(local)+len(incoming))

	for _, group := range [][]EncryptedPost{local, incoming} {
		for _, p := range group {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			merged = append(merged, p)
		}
	}

	return merged
}

// Added reports how many posts of incoming are new relative to local.
func Added(local, incoming []EncryptedPost) int {
	seen := make(map[string]struct{}, len(local))
	for _, p := range local {
		seen[p.ID] = struct{}{}
	}

	added := 0
	for _, p := range incoming {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		added++
	}
	return added
}
