package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PolarWolf314/hush/internal/audit"
	kerrors "github.com/PolarWolf314/hush/internal/errors"
)

// ActivityOptions configures the activity workflow.
type ActivityOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// SpaceID filters entries by space id prefix.
	SpaceID string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string
}

// ActivityResult contains the outcome of an activity query.
type ActivityResult struct {
	// Entries are the filtered activity log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Activity reads and filters the activity log. A missing log yields no
// entries.
//
// Returns ErrInvalidDateFormat if the date format is invalid.
func Activity(ctx context.Context, opts ActivityOptions) (*ActivityResult, error) {
	if err := ensureSettings(); err != nil {
		return nil, err
	}

	var since time.Time
	if opts.Since != "" {
		t, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		since = t
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	result := &ActivityResult{TotalEntriesBeforeFilter: len(entries)}

	filtered := entries
	if opts.SpaceID != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return strings.HasPrefix(e.SpaceID, opts.SpaceID)
		})
	}
	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.ToLower(strings.TrimSpace(ops[i]))
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return slices.Contains(ops, strings.ToLower(e.Operation))
		})
	}
	if !since.IsZero() {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			t, err := time.Parse(audit.TimestampFormat, e.Timestamp)
			return err == nil && !t.Before(since)
		})
	}

	if opts.Reverse {
		slices.Reverse(filtered)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats an entry timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the operation-specific part of an entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "create", "join":
		return strings.TrimSpace(e.SpaceName + " key " + e.Fingerprint)
	case "rekey":
		return "new key " + e.Fingerprint
	case "post":
		return e.PostID
	case "export":
		if e.Path == "" {
			return fmt.Sprintf("%d posts to stdout", e.PostsCount)
		}
		return fmt.Sprintf("%d posts to %s", e.PostsCount, e.Path)
	case "import":
		return fmt.Sprintf("%d of %d posts new", e.AddedCount, e.PostsCount)
	case "identity":
		return e.Detail
	default:
		return ""
	}
}
