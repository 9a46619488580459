package cmd

import (
	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/spf13/cobra"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes <series-path>",
	Short: "Crawl a series folder and print its episode catalog",
	Long: `Crawl a series folder depth-first and print every video file found below it,
newest discovery first. The series path may be relative to the configured
base_url (for example "/Frieren/") or a full URL.

Soundtrack folders are always skipped. Folders named extras are skipped unless
--include-extras is given or ignore_extras is disabled in the config.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		withProgress := interactive()
		a, err := newApp(cmd, args, withProgress)
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := crawlEpisodes(cmd.Context(), a.provider, provider.Series{URL: args[0]}, withProgress, a.cfg.Theme())
		if err != nil {
			return err
		}
		return printEpisodes(cmd.OutOrStdout(), outputFormat(), entries)
	},
}

var videosCmd = &cobra.Command{
	Use:   "videos <episode-url>",
	Short: "Print the playable streams of an episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, args, false)
		if err != nil {
			return err
		}
		defer a.Close()

		videos, err := a.provider.Videos(cmd.Context(), catalog.Entry{URL: args[0]})
		if err != nil {
			return err
		}
		return printVideos(cmd.OutOrStdout(), outputFormat(), videos)
	},
}

func init() {
	rootCmd.AddCommand(episodesCmd, videosCmd)
}
