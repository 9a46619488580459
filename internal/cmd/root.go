package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "title-crawl",
	Short: "Browse and catalog directory-listing video sources",
	Long: `title-crawl walks the HTML directory listings of a video source and turns
the files it finds into a clean, ordered episode catalog.

Series folders are listed from the source root, episode catalogs are built by
a depth-first crawl of a series folder, and the same catalog can be served as
JSON over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

var (
	jsonOut       bool
	plainOut      bool
	includeExtras bool
)

func init() {
	// Global flags for all commands
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&plainOut, "plain", false, "Print tab separated results and never start the progress screen")
	rootCmd.PersistentFlags().BoolVar(&includeExtras, "include-extras", false, "Crawl folders named extras even when ignore_extras is set")
}
