// Package noobsubs implements the catalog provider for the NoobSubs file
// server, a plain web directory listing of release folders.
package noobsubs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/rs/zerolog"
)

const (
	providerName = "noobsubs"

	// DefaultBaseURL is the listing root of the public server.
	DefaultBaseURL = "https://noobftp1.noobsubs.com"

	videoQuality = "Video"
)

// Provider implements provider.Provider on top of a directory lister
type Provider struct {
	lister listing.Lister
	logger *zerolog.Logger

	mu      sync.RWMutex
	baseURL string
	cfg     catalog.TraversalConfig
	config  map[string]interface{}
}

// New creates a provider reading listings through lister. A nil logger
// disables traversal warnings.
func New(lister listing.Lister, logger *zerolog.Logger) *Provider {
	return &Provider{
		lister:  lister,
		logger:  logger,
		baseURL: DefaultBaseURL,
		cfg: catalog.TraversalConfig{
			IgnoreExtras: true,
			MaxDepth:     catalog.DefaultMaxDepth,
		},
		config: make(map[string]interface{}),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return providerName
}

// Description returns the provider description
func (p *Provider) Description() string {
	return "NoobSubs release file server"
}

// BaseURL returns the listing root series URLs are resolved against
func (p *Provider) BaseURL() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.baseURL
}

// Capabilities returns what this provider can do
func (p *Provider) Capabilities() provider.ProviderCapabilities {
	return provider.ProviderCapabilities{
		SupportsLatest:  false,
		SupportsSearch:  true,
		SupportsDetails: false,
		Language:        "en",
	}
}

// ConfigSchema returns the configuration schema for this provider
func (p *Provider) ConfigSchema() provider.ConfigSchema {
	return provider.ConfigSchema{
		Fields: []provider.ConfigField{
			{
				Name:        "ignore_extras",
				DisplayName: "Ignore \"Extras\" folder",
				Type:        provider.ConfigFieldTypeBool,
				Default:     true,
				Description: "Skip folders named Extras when building an episode list",
			},
			{
				Name:        "max_depth",
				DisplayName: "Maximum folder depth",
				Type:        provider.ConfigFieldTypeInt,
				Default:     catalog.DefaultMaxDepth,
				Description: "Folders nested deeper than this below a series are not listed",
				Validation: &provider.ConfigFieldValidation{
					MinValue: 1,
					MaxValue: 256,
				},
			},
			{
				Name:        "base_url",
				DisplayName: "Server URL",
				Type:        provider.ConfigFieldTypeString,
				Default:     DefaultBaseURL,
				Description: "Root of the directory listing",
			},
		},
	}
}

// Configure applies configuration to the provider. Keys that are absent keep
// their current value.
func (p *Provider) Configure(config map[string]interface{}) error {
	if err := p.ConfigSchema().Validate(config); err != nil {
		return err
	}
	if v, ok := config["base_url"].(string); ok {
		if u, err := url.Parse(v); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base_url %q", v)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := config["ignore_extras"].(bool); ok {
		p.cfg.IgnoreExtras = v
	}
	if v, ok := provider.AsInt(config["max_depth"]); ok {
		p.cfg.MaxDepth = v
	}
	if v, ok := config["base_url"].(string); ok {
		p.baseURL = strings.TrimSuffix(v, "/")
	}

	for k, v := range config {
		p.config[k] = v
	}
	return nil
}

// TraversalConfig returns the traversal settings used by Episodes.
func (p *Provider) TraversalConfig() catalog.TraversalConfig {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

// Latest is not offered by the server.
func (p *Provider) Latest(ctx context.Context) ([]provider.Series, error) {
	return nil, provider.NotSupported(providerName, "latest updates")
}

// Details returns series unchanged; the server has no per-series page.
func (p *Provider) Details(ctx context.Context, series provider.Series) (provider.Series, error) {
	return series, nil
}

// Episodes crawls the series folder and returns its catalog, oldest first.
func (p *Provider) Episodes(ctx context.Context, series provider.Series) ([]catalog.Entry, error) {
	root, err := p.resolve(series.URL)
	if err != nil {
		return nil, provider.InvalidInput(providerName, err)
	}

	cfg := p.TraversalConfig()
	cfg.Logger = p.logger
	if progress := provider.ProgressFromContext(ctx); progress != nil {
		cfg.OnVisit = progress
	}

	entries, err := catalog.ListEpisodes(ctx, p.lister, root, cfg)
	if err != nil {
		return nil, p.wrap(ctx, err)
	}
	return entries, nil
}

// Videos returns the single direct stream of an entry. Listing links point
// at the files themselves, so nothing has to be extracted.
func (p *Provider) Videos(ctx context.Context, episode catalog.Entry) ([]provider.Video, error) {
	if episode.URL == "" {
		return nil, provider.InvalidInput(providerName, errors.New("episode has no URL"))
	}
	return []provider.Video{{URL: episode.URL, Quality: videoQuality}}, nil
}

// resolve turns a series reference into an absolute listing URL.
func (p *Provider) resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", catalog.ErrNoRoot
	}
	base, err := url.Parse(p.BaseURL() + "/")
	if err != nil {
		return "", err
	}
	u, err := base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse series URL %q: %w", ref, err)
	}
	return u.String(), nil
}

// wrap maps traversal and listing failures onto provider errors. Context
// errors are passed through so callers can tell cancellation apart.
func (p *Provider) wrap(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return err
	}
	if errors.Is(err, catalog.ErrNoRoot) {
		return provider.InvalidInput(providerName, err)
	}
	return provider.Unavailable(providerName, err)
}
