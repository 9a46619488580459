package provider

import (
	"context"

	"github.com/Digital-Shane/title-crawl/internal/catalog"
)

// Series is one browsable title offered by a provider.
type Series struct {
	Title string `json:"title"`
	// URL locates the series root listing. It may be relative to the
	// provider's BaseURL.
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Video is a playable stream for one catalog entry.
type Video struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// Provider is the interface every catalog source implements
type Provider interface {
	// Identification
	Name() string
	Description() string
	BaseURL() string

	// Capability discovery
	Capabilities() ProviderCapabilities

	// Configuration
	Configure(config map[string]interface{}) error
	ConfigSchema() ConfigSchema

	// Browsing
	Popular(ctx context.Context) ([]Series, error)
	Search(ctx context.Context, query string) ([]Series, error)
	Latest(ctx context.Context) ([]Series, error)
	Details(ctx context.Context, series Series) (Series, error)

	// Catalog and playback
	Episodes(ctx context.Context, series Series) ([]catalog.Entry, error)
	Videos(ctx context.Context, episode catalog.Entry) ([]Video, error)
}

// ProviderCapabilities describes what a provider can do
type ProviderCapabilities struct {
	SupportsLatest  bool   // Whether Latest returns a feed
	SupportsSearch  bool   // Whether Search filters server side or locally
	SupportsDetails bool   // Whether Details fetches anything beyond the series itself
	Language        string // Content language, e.g. "en"
}

// ConfigSchema describes the configuration a provider accepts
type ConfigSchema struct {
	Fields []ConfigField
}

// ConfigField describes a single configuration field
type ConfigField struct {
	Name        string                 // Field name
	DisplayName string                 // Human-readable name
	Type        ConfigFieldType        // Field type
	Required    bool                   // Whether this field is required
	Default     interface{}            // Default value
	Description string                 // Help text
	Validation  *ConfigFieldValidation // Validation rules
}

// ConfigFieldType represents the type of a configuration field
type ConfigFieldType string

const (
	ConfigFieldTypeInt    ConfigFieldType = "int"
	ConfigFieldTypeBool   ConfigFieldType = "bool"
	ConfigFieldTypeString ConfigFieldType = "string"
)

// ConfigFieldValidation contains validation rules for a field
type ConfigFieldValidation struct {
	MinValue int // Minimum numeric value
	MaxValue int // Maximum numeric value
}
