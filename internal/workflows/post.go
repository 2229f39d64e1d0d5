package workflows

import (
	"context"

	"github.com/PolarWolf314/hush/internal/audit"
	"github.com/PolarWolf314/hush/internal/clock"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/spaces"
)

// PostOptions configures the post workflow.
type PostOptions struct {
	// SpaceID selects the space; empty means the active space.
	SpaceID string

	// Text is the post body. It is encrypted before it is stored.
	Text string
}

// PostResult contains the outcome of a post operation.
type PostResult struct {
	Space spaces.Space
	Post  feed.EncryptedPost
}

// Post encrypts text under the space key and appends it to the space.
//
// Returns ErrNoActiveSpace if no space is given and none is active.
// Returns ErrEmptyPost or ErrPostTooLong for invalid text.
func Post(ctx context.Context, opts PostOptions) (*PostResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	id, err := s.resolve(opts.SpaceID)
	if err != nil {
		return nil, err
	}
	space, key, err := s.registry.Snapshot(id)
	if err != nil {
		return nil, err
	}

	postID, err := newPostID()
	if err != nil {
		return nil, err
	}

	post, err := feed.Compose(s.cipher, key, feed.Draft{
		ID:         postID,
		AuthorID:   s.identity.ID,
		AuthorName: s.identity.DisplayName,
		Text:       opts.Text,
		CreatedAt:  clock.Millis(Clock.Now()),
	})
	if err != nil {
		return nil, err
	}

	if err := s.registry.SetPosts(id, append(space.Posts, post)); err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithIdentity("post", s.identity)
	auditEntry.SpaceID = id
	auditEntry.PostID = post.ID
	audit.Log(auditEntry)

	updated, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	return &PostResult{Space: *updated, Post: post}, nil
}

// FeedOptions configures the feed workflow.
type FeedOptions struct {
	// SpaceID selects the space; empty means the active space.
	SpaceID string

	// Limit is the maximum number of posts to return, newest first.
	// 0 means no limit.
	Limit int
}

// FeedResult contains the decrypted view of a space.
type FeedResult struct {
	Space spaces.Space

	// Posts are sorted newest first. Posts that could not be decrypted are
	// included with DecryptionFailed set.
	Posts []feed.VisiblePost

	// Failed counts the undecryptable posts across the whole feed, not just
	// the returned page.
	Failed int

	// Total is the number of posts in the space.
	Total int
}

// Feed decrypts every post of a space with the space key. A post that fails
// to decrypt does not affect the others.
func Feed(ctx context.Context, opts FeedOptions) (*FeedResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	id, err := s.resolve(opts.SpaceID)
	if err != nil {
		return nil, err
	}
	space, key, err := s.registry.Snapshot(id)
	if err != nil {
		return nil, err
	}

	visible, err := feed.ResolveVisible(ctx, s.cipher, key, space.Posts)
	if err != nil {
		return nil, err
	}

	result := &FeedResult{
		Space:  *space,
		Failed: feed.Failed(visible),
		Total:  len(visible),
	}
	if opts.Limit > 0 && len(visible) > opts.Limit {
		visible = visible[:opts.Limit]
	}
	result.Posts = visible
	return result, nil
}
