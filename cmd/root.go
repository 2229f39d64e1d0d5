package cmd

import (
	"fmt"

	"github.com/PolarWolf314/hush/internal/configs"
	logger "github.com/PolarWolf314/hush/internal/logging"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// NewRootCommand builds the complete hush command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hush",
		Short: "hush - end-to-end encrypted spaces for short posts.",
		Long: `hush lets a group of people who trust each other share short text posts
inside encrypted spaces. Anyone holding a space's invite code can read and
write its posts; nothing else ever sees the plaintext.

Usage:
  hush <command> [flags]

Available Commands:
  space      Create, join and select spaces
  post       Write a post to a space
  feed       Read the posts of a space
  snapshot   Export and import the posts of a space
  identity   Show or change who you post as
  log        View local activity

Run 'hush help <command>' for more details on a specific command.
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(figure.NewFigure("hush", "small", true).String())
			fmt.Println("Run 'hush --help' to see available commands.")
		},
	}

	registerGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newSpaceCommand(),
		newPostCommand(),
		newFeedCommand(),
		newSnapshotCommand(),
		newIdentityCommand(),
		newLogCommand(),
	)

	return rootCmd
}

func registerGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	fs.BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// setup runs before every command: it configures the logger and resolves the
// settings directories.
func setup(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)

	if configs.HushSettings != nil {
		return nil
	}
	if err := configs.InitSettings(); err != nil {
		return Logger.ErrorfAndReturn("failed to resolve settings: %v", err)
	}
	Logger.Debugf("Config dir: %s", configs.HushSettings.ConfigDir)
	Logger.Debugf("Data dir: %s", configs.HushSettings.DataDir)
	return nil
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	Logger = logger.Logger{}
}
