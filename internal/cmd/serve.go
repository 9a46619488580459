package cmd

import (
	"time"

	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/Digital-Shane/title-crawl/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as a JSON HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, args, false)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.ServeAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		p := a.provider
		if a.cfg.CacheEnabled && a.cfg.CacheTTLMinutes > 0 {
			p = provider.WithCatalogCache(p, provider.NewCatalogCache(time.Duration(a.cfg.CacheTTLMinutes)*time.Minute))
		}
		return server.Serve(cmd.Context(), addr, server.New(p, a.logger), a.logger)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to serve_addr from the config)")
	rootCmd.AddCommand(serveCmd)
}
