// Package init handles provider initialization to avoid import cycles
package init

import (
	"fmt"

	"github.com/Digital-Shane/title-crawl/internal/listing"
	"github.com/Digital-Shane/title-crawl/internal/provider"
	"github.com/Digital-Shane/title-crawl/internal/provider/noobsubs"
	"github.com/rs/zerolog"
)

// LoadBuiltinProviders registers and enables the built-in providers on
// registry, reading listings through lister. config holds per provider
// settings keyed by provider name.
func LoadBuiltinProviders(registry *provider.Registry, lister listing.Lister, logger *zerolog.Logger, config map[string]map[string]interface{}) error {
	noobsubsProvider := noobsubs.New(lister, logger)
	if err := registry.Register(noobsubsProvider.Name(), noobsubsProvider, 100); err != nil {
		return fmt.Errorf("failed to register NoobSubs provider: %w", err)
	}
	if cfg, ok := config[noobsubsProvider.Name()]; ok {
		if err := registry.Configure(noobsubsProvider.Name(), cfg); err != nil {
			return err
		}
	}
	if err := registry.Enable(noobsubsProvider.Name()); err != nil {
		return fmt.Errorf("failed to enable NoobSubs provider: %w", err)
	}

	// Future providers

	return nil
}
