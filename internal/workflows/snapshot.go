package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/hush/internal/audit"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/snapshot"
	"github.com/PolarWolf314/hush/internal/spaces"
	"github.com/PolarWolf314/hush/internal/utils"
)

// StdoutPath selects standard output instead of a file.
const StdoutPath = "-"

// ExportSnapshotOptions configures the export workflow.
type ExportSnapshotOptions struct {
	// SpaceID selects the space; empty means the active space.
	SpaceID string

	// OutputPath is the path for the snapshot file.
	// If empty, defaults to hush-<space id prefix>-YYYY-MM-DD.json.
	// StdoutPath returns the snapshot in Data without writing a file.
	OutputPath string

	// Force overwrites an existing file.
	Force bool
}

// ExportSnapshotResult contains the outcome of an export operation.
type ExportSnapshotResult struct {
	Space spaces.Space

	// OutputPath is where the snapshot was written, or StdoutPath.
	OutputPath string

	// Data is the snapshot document.
	Data []byte

	// PostCount is the number of posts exported.
	PostCount int
}

// ExportSnapshot writes the posts of a space to a snapshot document. The
// space secret is never part of it.
func ExportSnapshot(ctx context.Context, opts ExportSnapshotOptions) (*ExportSnapshotResult, error) {
	s, err := openSession()
	if err != nil {
		return nil, err
	}

	id, err := s.resolve(opts.SpaceID)
	if err != nil {
		return nil, err
	}
	space, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	data, err := snapshot.Export(*space)
	if err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultSnapshotName(space.ID, Clock.Now())
	}
	if outputPath != StdoutPath {
		if err := utils.WriteFile(outputPath, data, opts.Force); err != nil {
			return nil, err
		}
	}

	auditEntry := audit.LogWithIdentity("export", s.identity)
	auditEntry.SpaceID = space.ID
	auditEntry.PostsCount = len(space.Posts)
	if outputPath != StdoutPath {
		auditEntry.Path = outputPath
	}
	audit.Log(auditEntry)

	return &ExportSnapshotResult{
		Space:      *space,
		OutputPath: outputPath,
		Data:       data,
		PostCount:  len(space.Posts),
	}, nil
}

func defaultSnapshotName(spaceID string, now time.Time) string {
	short := spaceID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("hush-%s-%s.json", short, now.Format("2006-01-02"))
}

// ImportSnapshotOptions configures the import workflow.
type ImportSnapshotOptions struct {
	// SpaceID selects the target space. When empty the snapshot's own space
	// id is used if it is known, otherwise the active space.
	SpaceID string

	// Data is the snapshot document.
	Data []byte

	// SourcePath is recorded in the activity log. Optional.
	SourcePath string

	// DryRun reports what would be merged without saving.
	DryRun bool
}

// ImportSnapshotResult contains the outcome of an import operation.
type ImportSnapshotResult struct {
	Space spaces.Space

	// Incoming is the number of posts in the snapshot.
	Incoming int

	// Added is the number of posts that were new to the space.
	Added int

	// Total is the number of posts in the space after the merge.
	Total int

	DryRun bool
}

// ImportSnapshot merges the posts of a snapshot into a space. Posts already
// present locally keep their local copy.
//
// Returns ErrInvalidSnapshot if the document is malformed, and
// ErrSnapshotSpaceMismatch if it was taken from a different space. In both
// cases nothing is merged.
func ImportSnapshot(ctx context.Context, opts ImportSnapshotOptions) (*ImportSnapshotResult, error) {
	snap, err := snapshot.Parse(opts.Data)
	if err != nil {
		return nil, err
	}

	s, err := openSession()
	if err != nil {
		return nil, err
	}

	ref := opts.SpaceID
	if ref == "" && snap.Meta.ID != "" {
		if _, err := s.registry.Get(snap.Meta.ID); err == nil {
			ref = snap.Meta.ID
		}
	}
	id, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if snap.Meta.ID != "" && snap.Meta.ID != id {
		return nil, fmt.Errorf("%w: snapshot is from %s, not %s", kerrors.ErrSnapshotSpaceMismatch, snap.Meta.ID, id)
	}

	space, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}

	merged := feed.Reconcile(space.Posts, snap.Posts)
	result := &ImportSnapshotResult{
		Incoming: len(snap.Posts),
		Added:    len(merged) - len(space.Posts),
		Total:    len(merged),
		DryRun:   opts.DryRun,
	}

	if opts.DryRun || result.Added == 0 {
		result.Space = *space
		return result, nil
	}

	if err := s.registry.SetPosts(id, merged); err != nil {
		return nil, err
	}
	if err := s.save(); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithIdentity("import", s.identity)
	auditEntry.SpaceID = id
	auditEntry.PostsCount = result.Incoming
	auditEntry.AddedCount = result.Added
	auditEntry.Path = opts.SourcePath
	audit.Log(auditEntry)

	updated, err := s.registry.Get(id)
	if err != nil {
		return nil, err
	}
	result.Space = *updated
	return result, nil
}
