package adminunits

import (
	"context"

	"github.com/goliatone/go-codelists/clientcache"
)

// CacheNamespace prefixes every key written by CachedClient.
const CacheNamespace = "adminunits"

// CachedClient decorates a Client with a read-through cache. Returned slices
// are shared between callers and must not be modified.
type CachedClient struct {
	base      Client
	decorator *clientcache.Decorator
}

// NewCachedClient wraps base. The decorator should use CacheNamespace.
func NewCachedClient(base Client, decorator *clientcache.Decorator) *CachedClient {
	return &CachedClient{base: base, decorator: decorator}
}

// GetCounties implements Client with caching.
func (c *CachedClient) GetCounties(ctx context.Context) ([]County, error) {
	return clientcache.Fetch(ctx, c.decorator, "GetCounties", nil, c.base.GetCounties)
}

// GetCommunes implements Client with caching.
func (c *CachedClient) GetCommunes(ctx context.Context) ([]Commune, error) {
	return clientcache.Fetch(ctx, c.decorator, "GetCommunes", nil, c.base.GetCommunes)
}

// GetCountyCommunes implements Client with caching. The county number is
// part of the cache key.
func (c *CachedClient) GetCountyCommunes(ctx context.Context, countyNumber string) ([]Commune, error) {
	return clientcache.Fetch(ctx, c.decorator, "GetCountyCommunes", []any{countyNumber}, func(ctx context.Context) ([]Commune, error) {
		return c.base.GetCountyCommunes(ctx, countyNumber)
	})
}

// Invalidate drops every cached response.
func (c *CachedClient) Invalidate(ctx context.Context) error {
	return c.decorator.Invalidate(ctx)
}

// Stats reports cache activity.
func (c *CachedClient) Stats() clientcache.Stats {
	return c.decorator.Stats()
}

var _ Client = (*CachedClient)(nil)
