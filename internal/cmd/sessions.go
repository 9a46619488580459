package cmd

import (
	"fmt"

	"github.com/Digital-Shane/title-crawl/internal/log"
	"github.com/spf13/cobra"
)

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Show recent crawl sessions from the operation log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := log.Summaries(sessionsLimit)
		if err != nil {
			return fmt.Errorf("failed to read log sessions: %w", err)
		}
		return printSessions(cmd.OutOrStdout(), outputFormat(), summaries)
	},
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 20, "Number of sessions to show (0 for all)")
	rootCmd.AddCommand(sessionsCmd)
}
