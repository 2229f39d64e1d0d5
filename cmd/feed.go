package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/PolarWolf314/hush/internal/feed"
	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/PolarWolf314/hush/internal/utils"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

// feedEntry is the JSON form of a decrypted post.
type feedEntry struct {
	ID               string `json:"id"`
	AuthorID         string `json:"authorId"`
	AuthorName       string `json:"authorName"`
	CreatedAt        int64  `json:"createdAt"`
	Text             string `json:"text"`
	DecryptionFailed bool   `json:"decryptionFailed,omitempty"`
}

func newFeedCommand() *cobra.Command {
	var (
		spaceRef string
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Read the posts of a space",
		Long: `Decrypts and prints the posts of a space, newest first.

Posts that cannot be decrypted with the current key, for example after the
space was rekeyed, are shown with a placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting feed command")

			spinner, cleanup := startSpinner("Decrypting posts...")

			result, err := workflows.Feed(cmd.Context(), workflows.FeedOptions{
				SpaceID: spaceRef,
				Limit:   limit,
			})
			if err != nil {
				Logger.Errorf("Feed failed: %v", err)
				spinner.FinalMSG = formatError(err)
				cleanup()
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}
			cleanup()

			Logger.Debugf("Decrypted %d posts, %d failed", result.Total-result.Failed, result.Failed)

			if asJSON {
				return outputFeedJSON(result.Posts)
			}

			if len(result.Posts) == 0 {
				fmt.Printf("No posts in %s yet.\n", ui.Highlight.Sprint(result.Space.Name))
				return nil
			}

			fmt.Printf("%s %s\n\n", ui.Highlight.Sprint(result.Space.Name), ui.Muted.Sprint(utils.Pluralize(result.Total, "post")))
			for _, p := range result.Posts {
				outputFeedPost(p)
			}
			if result.Failed > 0 {
				Logger.WarnfAlways("%s could not be decrypted with the current key", utils.Pluralize(result.Failed, "post"))
			}
			return nil
		},
	}

	addSpaceFlag(cmd.Flags(), &spaceRef)
	cmd.Flags().IntVarP(&limit, "number", "n", 0, "limit number of posts shown")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON array")
	return cmd
}

func outputFeedPost(p feed.VisiblePost) {
	when := time.UnixMilli(p.CreatedAt).Local().Format("2006-01-02 15:04")
	author := p.AuthorName
	if author == "" {
		author = "unknown"
	}
	fmt.Printf("%s  %s\n", ui.Highlight.Sprint(author), ui.Muted.Sprint(when))
	if p.DecryptionFailed {
		fmt.Printf("  %s\n\n", ui.Warning.Sprint(p.Plaintext))
		return
	}
	fmt.Printf("  %s\n\n", p.Plaintext)
}

func outputFeedJSON(posts []feed.VisiblePost) error {
	entries := make([]feedEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, feedEntry{
			ID:               p.ID,
			AuthorID:         p.AuthorID,
			AuthorName:       p.AuthorName,
			CreatedAt:        p.CreatedAt,
			Text:             p.Plaintext,
			DecryptionFailed: p.DecryptionFailed,
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal posts to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
