package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages all available catalog providers
type Registry struct {
	mu            sync.RWMutex
	providers     map[string]Provider
	priorities    map[string]int
	enabledStatus map[string]bool
	configs       map[string]map[string]interface{}
}

// GlobalRegistry is the default registry instance
var GlobalRegistry = NewRegistry()

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers:     make(map[string]Provider),
		priorities:    make(map[string]int),
		enabledStatus: make(map[string]bool),
		configs:       make(map[string]map[string]interface{}),
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(name string, provider Provider, priority int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	// Validate provider capabilities
	if err := ValidateCapabilities(provider.Capabilities()); err != nil {
		return fmt.Errorf("invalid provider capabilities for %s: %w", name, err)
	}

	r.providers[name] = provider
	r.priorities[name] = priority
	r.enabledStatus[name] = false // Disabled by default

	return nil
}

// Get returns a provider by name
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	return provider, exists
}

// List returns all registered providers
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNamesUnsafe()
}

// sortedNamesUnsafe orders names by priority, then name. Caller holds r.mu.
func (r *Registry) sortedNamesUnsafe() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if r.priorities[names[i]] != r.priorities[names[j]] {
			return r.priorities[names[i]] > r.priorities[names[j]]
		}
		return names[i] < names[j]
	})

	return names
}

// Enable enables a provider
func (r *Registry) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, exists := r.providers[name]
	if !exists {
		return fmt.Errorf("provider %s not found", name)
	}

	// Validate stored configuration
	if err := provider.ConfigSchema().Validate(r.configs[name]); err != nil {
		return fmt.Errorf("provider %s is not configured: %w", name, err)
	}

	r.enabledStatus[name] = true
	return nil
}

// Enabled returns the enabled providers in priority order
func (r *Registry) Enabled() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var enabled []Provider
	for _, name := range r.sortedNamesUnsafe() {
		if r.enabledStatus[name] {
			enabled = append(enabled, r.providers[name])
		}
	}
	return enabled
}

// Default returns the highest priority enabled provider
func (r *Registry) Default() (Provider, error) {
	enabled := r.Enabled()
	if len(enabled) == 0 {
		return nil, fmt.Errorf("no provider enabled")
	}
	return enabled[0], nil
}

// Configure sets configuration for a provider
func (r *Registry) Configure(name string, config map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	provider, exists := r.providers[name]
	if !exists {
		return fmt.Errorf("provider %s not found", name)
	}

	if err := provider.ConfigSchema().Validate(config); err != nil {
		return fmt.Errorf("invalid configuration for provider %s: %w", name, err)
	}

	// Apply configuration to provider
	if err := provider.Configure(config); err != nil {
		return fmt.Errorf("failed to configure provider %s: %w", name, err)
	}

	// Store configuration
	r.configs[name] = config

	return nil
}
