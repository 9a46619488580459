package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/config"
	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/log"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	providerinit "github.com/Digital-Shane/title-crawl/internal/provider/init"
	"github.com/Digital-Shane/title-crawl/internal/tui/progress"
	"github.com/Digital-Shane/title-crawl/internal/tui/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app bundles everything a command needs to talk to the source.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	lister   *listing.HTTPLister
	provider provider.Provider
}

// newApp loads the config, starts the session log and registers the
// built-in providers. quiet discards the console logger so it cannot draw
// over a full screen program.
func newApp(cmd *cobra.Command, args []string, quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cfg)

	var out io.Writer = os.Stderr
	if quiet {
		out = io.Discard
	}
	logger := log.NewLogger(cfg.LogLevel, out)

	log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)
	if err := log.StartSession(cmd.Name(), append([]string{cmd.Name()}, args...)); err != nil {
		logger.Warn().Err(err).Msg("session log disabled")
	}

	lister := listing.NewHTTPLister(cfg.ListerOptions(&logger))
	if err := providerinit.LoadBuiltinProviders(provider.GlobalRegistry, lister, &logger, cfg.ProviderConfig()); err != nil {
		return nil, err
	}
	p, err := provider.GlobalRegistry.Default()
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, lister: lister, provider: p}, nil
}

// applyFlags lets global flags override the loaded config.
func applyFlags(cfg *config.Config) {
	if includeExtras {
		cfg.IgnoreExtras = false
	}
}

// Close persists the page cache and writes the session log.
func (a *app) Close() {
	if err := a.lister.SaveCache(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to save listing cache")
	}
	if err := log.EndSession(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to write session log")
	}
}

// interactive reports whether the progress screen may be used.
func interactive() bool {
	if plainOut || jsonOut {
		return false
	}
	return isTerminal(os.Stdout) && isTerminal(os.Stdin)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// crawlEpisodes builds the catalog of series, showing the progress screen
// drawn with th when withProgress is set.
func crawlEpisodes(ctx context.Context, p provider.Provider, series provider.Series, withProgress bool, th theme.Theme) ([]catalog.Entry, error) {
	if !withProgress {
		return p.Episodes(ctx, series)
	}

	crawl := func(ctx context.Context, onVisit func(catalog.Progress)) ([]catalog.Entry, error) {
		return p.Episodes(provider.WithProgress(ctx, onVisit), series)
	}
	model := progress.NewCrawlProgressModel(ctx, series.URL, crawl, th)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return nil, err
	}
	pm, ok := finalModel.(*progress.CrawlProgressModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T after crawling", finalModel)
	}
	if err := pm.Err(); err != nil {
		return nil, err
	}
	return pm.Entries(), nil
}
