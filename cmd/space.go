package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/PolarWolf314/hush/internal/utils"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

func newSpaceCommand() *cobra.Command {
	spaceCmd := &cobra.Command{
		Use:   "space",
		Short: "Create, join and select spaces",
		Long: `Provides commands for managing the spaces this device knows about.

Examples:
  # Create a space and become its owner
  hush space create "Book club"

  # Join a space from an invite code (prompted without echo)
  hush space join

  # See every space and which one is active
  hush space list

  # Switch the active space by id or id prefix
  hush space use 0b7f2c5e

  # Print the full invite code of the active space
  hush space invite --reveal`,
	}

	spaceCmd.AddCommand(
		newSpaceCreateCommand(),
		newSpaceJoinCommand(),
		newSpaceListCommand(),
		newSpaceUseCommand(),
		newSpaceInviteCommand(),
	)
	return spaceCmd
}

func newSpaceCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new space with a fresh key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting space create command")
			spinner, cleanup := startSpinner("Creating space...")
			defer cleanup()

			result, err := workflows.CreateSpace(cmd.Context(), workflows.CreateSpaceOptions{
				Name:        strings.Join(args, " "),
				Description: description,
			})
			if err != nil {
				Logger.Errorf("Create failed: %v", err)
				spinner.FinalMSG = formatError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			Logger.Debugf("Created space %s with key %s", result.Space.ID, result.Fingerprint)
			spinner.FinalMSG = success("Created space %s", ui.Highlight.Sprint(result.Space.Name)) + "\n" +
				fmt.Sprintf("    id:     %s\n", result.Space.ID) +
				fmt.Sprintf("    key:    %s\n", ui.Secret.Sprint(result.Fingerprint)) +
				fmt.Sprintf("    invite: %s\n", ui.Secret.Sprint(ui.Truncate(result.Invite))) +
				hint("Run %s to share the full invite code", ui.Code.Sprint("hush space invite --reveal"))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "optional description of the space")
	return cmd
}

func newSpaceJoinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "join [invite-code]",
		Short: "Join a space from an invite code",
		Long: `Joins the space an invite code points to.

Without an argument the code is read from the terminal without echo, or from
standard input when it is piped. Joining a space you already know with a new
code replaces its key; posts written under the old key stay but can no
longer be read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting space join command")

			code, err := readInviteCode(args)
			if err != nil {
				fmt.Println(failure("%s", err.Error()))
				return nil
			}

			spinner, cleanup := startSpinner("Joining space...")
			defer cleanup()

			result, err := workflows.JoinSpace(cmd.Context(), workflows.JoinSpaceOptions{Code: code})
			if err != nil {
				Logger.Errorf("Join failed: %v", err)
				spinner.FinalMSG = formatError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			switch {
			case result.Rekeyed:
				Logger.WarnfAlways("space %s was rekeyed (key %s replaced by %s); older posts may no longer decrypt",
					result.Space.ID, result.PreviousFingerprint, result.Fingerprint)
				spinner.FinalMSG = success("Updated the key of %s", ui.Highlight.Sprint(result.Space.Name))
			case result.AlreadyKnown:
				spinner.FinalMSG = success("Already a member of %s", ui.Highlight.Sprint(result.Space.Name))
			default:
				spinner.FinalMSG = success("Joined %s", ui.Highlight.Sprint(result.Space.Name)) + "\n" +
					fmt.Sprintf("    id:  %s\n", result.Space.ID) +
					fmt.Sprintf("    key: %s", ui.Secret.Sprint(result.Fingerprint))
			}
			return nil
		},
	}
}

// readInviteCode takes the code from args, the terminal, or piped stdin.
func readInviteCode(args []string) (string, error) {
	if len(args) == 1 {
		Logger.WarnfAlways("invite codes passed as arguments can end up in your shell history")
		return args[0], nil
	}

	var data []byte
	var err error
	if utils.IsTerminal() {
		data, err = utils.ReadHidden("Invite code: ")
	} else {
		data, err = utils.ReadStdin("pipe the invite code to this command")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func newSpaceListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known spaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting space list command")

			result, err := workflows.ListSpaces(cmd.Context())
			if err != nil {
				fmt.Println(formatError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			if len(result.Spaces) == 0 {
				fmt.Println("No spaces yet.")
				fmt.Println(hint("Run %s or %s", ui.Code.Sprint("hush space create"), ui.Code.Sprint("hush space join")))
				return nil
			}

			for _, s := range result.Spaces {
				marker := " "
				if s.Active {
					marker = ui.Success.Sprint("*")
				}
				role := "member"
				if !s.Space.Joined() {
					role = "owner"
				}
				fmt.Printf("%s %-36s  %-24s  %s  %s\n",
					marker, s.Space.ID, ui.Highlight.Sprint(s.Space.Name),
					ui.Secret.Sprint(s.Fingerprint),
					ui.Muted.Sprint(utils.Pluralize(s.PostCount, "post")+", "+role))
			}
			return nil
		},
	}
}

func newSpaceUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <space>",
		Short: "Select the active space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting space use command")

			result, err := workflows.UseSpace(cmd.Context(), workflows.UseSpaceOptions{SpaceID: args[0]})
			if err != nil {
				fmt.Println(formatError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			fmt.Println(success("Now using %s %s", ui.Highlight.Sprint(result.Space.Name), ui.Muted.Sprint(result.Space.ID)))
			return nil
		},
	}
}

func newSpaceInviteCommand() *cobra.Command {
	var (
		spaceRef string
		reveal   bool
	)

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Show the invite code of a space",
		Long: `Shows the invite code of a space. The code contains the space key: anyone
who has it can read every post. It is truncated unless --reveal is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting space invite command")

			result, err := workflows.ShowInvite(cmd.Context(), workflows.ShowInviteOptions{SpaceID: spaceRef})
			if err != nil {
				fmt.Println(formatError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			if reveal {
				Logger.WarnfAlways("this code grants full access to %s; share it privately", result.Space.Name)
				fmt.Println(result.Invite)
				return nil
			}

			fmt.Printf("%s  %s\n", ui.Highlight.Sprint(result.Space.Name), ui.Secret.Sprint(ui.Truncate(result.Invite)))
			fmt.Println(hint("Pass %s to print the full code", ui.Flag.Sprint("--reveal")))
			return nil
		},
	}

	addSpaceFlag(cmd.Flags(), &spaceRef)
	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the full invite code")
	return cmd
}
