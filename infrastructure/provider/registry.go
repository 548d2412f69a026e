package provider

import (
	"fmt"

	"github.com/vrothberg/testing-farm-package-analyzer/domain"
)

// Registry manages all registered hosting provider implementations.
type Registry struct {
	providers map[string]Factory
}

// Factory is a constructor function that creates a Provider from settings.
type Factory func(settings domain.ProviderSettings) domain.Provider

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Factory),
	}
}

// Register adds a provider factory under the given name (e.g. "gitlab").
func (r *Registry) Register(name string, factory Factory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *Registry) Get(name string, settings domain.ProviderSettings) (domain.Provider, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	return factory(settings), nil
}

// Names returns the list of registered provider names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}
