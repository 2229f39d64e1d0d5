package cmd

import (
	"fmt"
	"strings"

	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

func newIdentityCommand() *cobra.Command {
	identityCmd := &cobra.Command{
		Use:   "identity",
		Short: "Show or change who you post as",
		Long: `Your identity is a random id and a display name attached to every post you
write. By default it is remembered between runs; turn that off to get a new
identity each time.

Examples:
  hush identity show
  hush identity set-name "Ana"
  hush identity persist off`,
	}

	identityCmd.AddCommand(
		newIdentityShowCommand(),
		newIdentitySetNameCommand(),
		newIdentityPersistCommand(),
	)
	return identityCmd
}

func printIdentity(result *workflows.IdentityResult) {
	state := "remembered"
	if !result.Identity.Persist {
		state = "not remembered"
	}
	fmt.Printf("name: %s\n", ui.Highlight.Sprint(result.Identity.DisplayName))
	fmt.Printf("id:   %s %s\n", result.Identity.ID, ui.Muted.Sprint(state))
}

func newIdentityShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting identity show command")

			result, err := workflows.ShowIdentity(cmd.Context())
			if err != nil {
				fmt.Println(formatError(err))
				return err
			}
			printIdentity(result)
			return nil
		},
	}
}

func newIdentitySetNameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name <name>",
		Short: "Change your display name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting identity set-name command")

			result, err := workflows.SetDisplayName(cmd.Context(), workflows.SetDisplayNameOptions{
				Name: strings.Join(args, " "),
			})
			if err != nil {
				fmt.Println(formatError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			if !result.Changed {
				fmt.Println(success("Display name is already %s", ui.Highlight.Sprint(result.Identity.DisplayName)))
				return nil
			}
			fmt.Println(success("Display name changed from %s to %s",
				ui.Highlight.Sprint(result.Previous), ui.Highlight.Sprint(result.Identity.DisplayName)))
			if !result.Identity.Persist {
				fmt.Println(hint("Identity is not remembered; the name applies to this run only"))
			}
			return nil
		},
	}
}

func newIdentityPersistCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "persist <on|off>",
		Short:     "Remember or forget your identity between runs",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting identity persist command")

			var persist bool
			switch strings.ToLower(args[0]) {
			case "on", "true", "yes":
				persist = true
			case "off", "false", "no":
				persist = false
			default:
				fmt.Println(failure("Expected %s or %s, got %q", ui.Code.Sprint("on"), ui.Code.Sprint("off"), args[0]))
				return nil
			}

			result, err := workflows.SetPersist(cmd.Context(), workflows.SetPersistOptions{Persist: persist})
			if err != nil {
				fmt.Println(formatError(err))
				return err
			}

			switch {
			case !result.Changed:
				fmt.Println(success("Nothing to change"))
			case persist:
				fmt.Println(success("Identity will be remembered"))
			default:
				fmt.Println(success("Identity forgotten; a new one is used on every run"))
			}
			return nil
		},
	}
}
