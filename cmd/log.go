package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/PolarWolf314/hush/internal/audit"
	"github.com/PolarWolf314/hush/internal/workflows"
	"github.com/spf13/cobra"
)

func newLogCommand() *cobra.Command {
	var (
		limit     int
		reverse   bool
		spaceRef  string
		operation string
		since     string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "View the local activity log",
		Long: `Displays what this device did with its spaces and when.

Entries never contain invite codes or post text.

Examples:
  hush log                       # View full log
  hush log -n 10                 # Last 10 entries
  hush log --reverse             # Most recent first
  hush log --operation join,rekey
  hush log --since 2024-01-01
  hush log --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			Logger.Infof("Starting log command")

			result, err := workflows.Activity(cmd.Context(), workflows.ActivityOptions{
				Limit:      limit,
				Reverse:    reverse,
				SpaceID:    spaceRef,
				Operations: operation,
				Since:      since,
			})
			if err != nil {
				fmt.Println(formatError(err))
				if isUnexpectedError(err) {
					return err
				}
				return nil
			}

			Logger.Debugf("Parsed %d entries from activity log", result.TotalEntriesBeforeFilter)
			Logger.Debugf("After filtering: %d entries", len(result.Entries))

			if len(result.Entries) == 0 {
				if result.TotalEntriesBeforeFilter == 0 {
					fmt.Println("No activity recorded yet.")
				} else {
					fmt.Println("No activity entries found matching the filters.")
				}
				return nil
			}

			if asJSON {
				return outputLogJSON(result.Entries)
			}
			for _, e := range result.Entries {
				fmt.Printf("%-19s  %-20s  %-8s  %s\n",
					workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 0, "limit number of entries shown")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "show most recent entries first")
	cmd.Flags().StringVarP(&spaceRef, "space", "s", "", "filter by space id prefix")
	cmd.Flags().StringVar(&operation, "operation", "", "filter by operation type (comma-separated)")
	cmd.Flags().StringVar(&since, "since", "", "show entries after date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON array")
	return cmd
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
