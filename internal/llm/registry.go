package llm

import "strings"

// Registry stores providers by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(p Provider) {
	if r == nil {
		panic("llm: register on nil registry")
	}
	if p == nil {
		panic("llm: register nil provider")
	}
	name := strings.TrimSpace(p.Name())
	if name == "" {
		panic("llm: provider has empty name")
	}
	if r.providers == nil {
		r.providers = make(map[string]Provider)
	}
	r.providers[name] = p
}

// Get returns a named provider if present.
func (r *Registry) Get(name string) (Provider, bool) {
	if r == nil || r.providers == nil {
		return nil, false
	}
	p, ok := r.providers[strings.TrimSpace(name)]
	return p, ok
}
