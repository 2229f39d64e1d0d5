package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/PolarWolf314/hush/internal/utils"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

func newPostCommand() *cobra.Command {
	var spaceRef string

	cmd := &cobra.Command{
		Use:   "post [text...]",
		Short: "Write an encrypted post to a space",
		Long: `Encrypts a post with the space key and adds it to the space.

The text is taken from the arguments, or from standard input when none are
given.

Examples:
  hush post "see you thursday"
  echo "see you thursday" | hush post --space 0b7f2c5e`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting post command")

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := utils.ReadStdin("pass the text as an argument or pipe it")
				if err != nil {
					fmt.Println(failure("%s", err.Error()))
					return nil
				}
				text = strings.TrimRight(string(data), "\r\n")
			}

			spinner, cleanup := startSpinner("Encrypting post...")
			defer cleanup()

			result, err := workflows.Post(cmd.Context(), workflows.PostOptions{
				SpaceID: spaceRef,
				Text:    text,
			})
			if err != nil {
				Logger.Errorf("Post failed: %v", err)
				spinner.FinalMSG = formatError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			Logger.Debugf("Stored post %s (%d bytes of ciphertext)", result.Post.ID, len(result.Post.Ciphertext))
			spinner.FinalMSG = success("Posted to %s %s", ui.Highlight.Sprint(result.Space.Name),
				ui.Muted.Sprint(utils.Pluralize(len(result.Space.Posts), "post")))
			return nil
		},
	}

	addSpaceFlag(cmd.Flags(), &spaceRef)
	return cmd
}
