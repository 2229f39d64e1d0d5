package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/hush/internal/ui"
	"github.com/PolarWolf314/hush/internal/utils"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

func newSnapshotCommand() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export and import the posts of a space",
		Long: `Snapshots carry the encrypted posts of a space between members. They never
contain the space key, so a snapshot is useless without the invite code.

Examples:
  # Write the active space to a file
  hush snapshot export -o club.json

  # Merge a snapshot someone sent you
  hush snapshot import club.json`,
	}

	snapshotCmd.AddCommand(newSnapshotExportCommand(), newSnapshotImportCommand())
	return snapshotCmd
}

func newSnapshotExportCommand() *cobra.Command {
	var (
		spaceRef string
		output   string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the posts of a space to a snapshot file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting snapshot export command")

			toStdout := output == workflows.StdoutPath
			if toStdout {
				result, err := workflows.ExportSnapshot(cmd.Context(), workflows.ExportSnapshotOptions{
					SpaceID:    spaceRef,
					OutputPath: output,
				})
				if err != nil {
					fmt.Fprintln(os.Stderr, formatError(err))
					if isUnexpectedError(err) {
						return err
					}
					return nil
				}
				_, err = os.Stdout.Write(result.Data)
				return err
			}

			spinner, cleanup := startSpinner("Exporting snapshot...")
			defer cleanup()

			result, err := workflows.ExportSnapshot(cmd.Context(), workflows.ExportSnapshotOptions{
				SpaceID:    spaceRef,
				OutputPath: output,
				Force:      force,
			})
			if err != nil {
				Logger.Errorf("Export failed: %v", err)
				spinner.FinalMSG = formatError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			spinner.FinalMSG = success("Exported %s of %s to %s",
				utils.Pluralize(result.PostCount, "post"),
				ui.Highlight.Sprint(result.Space.Name),
				ui.Path.Sprint(result.OutputPath))
			return nil
		},
	}

	addSpaceFlag(cmd.Flags(), &spaceRef)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout)`)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newSnapshotImportCommand() *cobra.Command {
	var (
		spaceRef string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Merge a snapshot into a space",
		Long: `Merges the posts of a snapshot into a space. Posts you already have are
kept as they are; only new posts are added. A snapshot taken from another
space is refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting snapshot import command")

			source := args[0]
			var data []byte
			var err error
			if source == workflows.StdoutPath {
				data, err = utils.ReadStdin("pipe the snapshot to this command")
			} else {
				data, err = os.ReadFile(source)
			}
			if err != nil {
				fmt.Println(failure("Failed to read snapshot: %s", err.Error()))
				return nil
			}
			Logger.Debugf("Read %d bytes from %s", len(data), source)

			spinner, cleanup := startSpinner("Importing snapshot...")
			defer cleanup()

			result, err := workflows.ImportSnapshot(cmd.Context(), workflows.ImportSnapshotOptions{
				SpaceID:    spaceRef,
				Data:       data,
				SourcePath: source,
				DryRun:     dryRun,
			})
			if err != nil {
				Logger.Errorf("Import failed: %v", err)
				spinner.FinalMSG = formatError(err)
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			prefix := ""
			if result.DryRun {
				prefix = ui.Warning.Sprint("[dry-run]") + " "
			}
			spinner.FinalMSG = prefix + success("%s new of %d in snapshot, %s now has %s",
				utils.Pluralize(result.Added, "post"),
				result.Incoming,
				ui.Highlight.Sprint(result.Space.Name),
				utils.Pluralize(result.Total, "post"))
			return nil
		},
	}

	addSpaceFlag(cmd.Flags(), &spaceRef)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be merged without saving")
	return cmd
}
