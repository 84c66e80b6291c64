package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds named providers. Lookup is case-insensitive.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under name. Registering an existing name
// replaces the previous provider.
func (r *Registry) Register(name string, p Provider) error {
	if r == nil {
		return fmt.Errorf("llm: registry is nil")
	}
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("llm: provider name is empty")
	}
	if p == nil {
		return fmt.Errorf("llm: provider %q is nil", name)
	}
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[key] = p
	return nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	if r == nil || len(r.providers) == 0 {
		return nil, fmt.Errorf("llm: no providers registered")
	}
	p, ok := r.providers[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("llm: unknown provider %q (have %s)", name, strings.Join(r.Names(), ", "))
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
