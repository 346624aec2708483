package codelist

import (
	"context"
	"slices"
	"sync"
)

// Registry holds providers by id.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns a registry populated with providers.
func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds p. Ids are unique.
func (r *Registry) Register(p Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[p.ID()]; exists {
		return DuplicateProvider(p.ID())
	}
	r.providers[p.ID()] = p
	return nil
}

// Get returns the provider registered under id.
func (r *Registry) Get(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, UnknownProvider(id)
	}
	return p, nil
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GetOptions resolves options through the provider registered under id.
func (r *Registry) GetOptions(ctx context.Context, id, language string, filters map[string]string) (*AppOptions, error) {
	p, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return p.GetOptions(ctx, language, filters)
}
