package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "List the series folders at the source root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, args, false)
		if err != nil {
			return err
		}
		defer a.Close()

		series, err := a.provider.Popular(cmd.Context())
		if err != nil {
			return err
		}
		return printSeries(cmd.OutOrStdout(), outputFormat(), series)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find series folders whose name contains the query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, args, false)
		if err != nil {
			return err
		}
		defer a.Close()

		series, err := a.provider.Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printSeries(cmd.OutOrStdout(), outputFormat(), series)
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List recently updated series, if the source offers a feed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, args, false)
		if err != nil {
			return err
		}
		defer a.Close()

		series, err := a.provider.Latest(cmd.Context())
		if err != nil {
			return err
		}
		return printSeries(cmd.OutOrStdout(), outputFormat(), series)
	},
}

func init() {
	rootCmd.AddCommand(seriesCmd, searchCmd, latestCmd)
}
