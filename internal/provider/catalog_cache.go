package provider

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
	"github.com/patrickmn/go-cache"
)

// CatalogCache provides safe access to finished episode catalogs.
type CatalogCache interface {
	Get(key string) ([]catalog.Entry, bool)
	Set(key string, entries []catalog.Entry)
	Flush()
}

// GenerateCatalogKey creates the cache key for a series catalog.
func GenerateCatalogKey(providerName, seriesURL string) string {
	return fmt.Sprintf("episodes:%s:%s", providerName, seriesURL)
}

type memoryCatalogCache struct {
	c *cache.Cache
}

// NewCatalogCache returns an in-memory cache whose catalogs expire after ttl.
func NewCatalogCache(ttl time.Duration) CatalogCache {
	return &memoryCatalogCache{c: cache.New(ttl, 2*ttl)}
}

func (m *memoryCatalogCache) Get(key string) ([]catalog.Entry, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	entries, ok := v.([]catalog.Entry)
	return entries, ok
}

func (m *memoryCatalogCache) Set(key string, entries []catalog.Entry) {
	m.c.SetDefault(key, entries)
}

func (m *memoryCatalogCache) Flush() {
	m.c.Flush()
}

type cachedProvider struct {
	Provider
	cache CatalogCache
}

// WithCatalogCache wraps p so that a series is crawled at most once until
// its cached catalog expires. Failed crawls are not cached, and
// reconfiguring the provider drops every cached catalog.
func WithCatalogCache(p Provider, c CatalogCache) Provider {
	if c == nil {
		return p
	}
	return &cachedProvider{Provider: p, cache: c}
}

func (c *cachedProvider) Configure(config map[string]interface{}) error {
	if err := c.Provider.Configure(config); err != nil {
		return err
	}
	c.cache.Flush()
	return nil
}

func (c *cachedProvider) Episodes(ctx context.Context, series Series) ([]catalog.Entry, error) {
	key := GenerateCatalogKey(c.Name(), series.URL)
	if entries, ok := c.cache.Get(key); ok {
		return slices.Clone(entries), nil
	}

	entries, err := c.Provider.Episodes(ctx, series)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, slices.Clone(entries))
	return entries, nil
}
