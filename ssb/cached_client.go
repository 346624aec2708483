package ssb

import (
	"context"
	"time"

	"github.com/goliatone/go-codelists/clientcache"
)

// CacheNamespace prefixes every key written by CachedClient.
const CacheNamespace = "ssb"

// CachedClient decorates a Client with a read-through cache. The cache key
// covers every argument of GetClassificationCodes after normalization.
type CachedClient struct {
	base      Client
	decorator *clientcache.Decorator
	now       func() time.Time
}

// NewCachedClient wraps base. The decorator should use CacheNamespace.
func NewCachedClient(base Client, decorator *clientcache.Decorator) *CachedClient {
	return &CachedClient{
		base:      base,
		decorator: decorator,
		now:       time.Now,
	}
}

// GetClassificationCodes implements Client with caching.
func (c *CachedClient) GetClassificationCodes(ctx context.Context, classificationID int, language string, atDate time.Time, level, variant string) (*ClassificationCodes, error) {
	language = NormalizeLanguage(language)
	atDate = NormalizeDate(atDate, c.now)

	args := []any{classificationID, language, atDate, level, variant}
	return clientcache.Fetch(ctx, c.decorator, "GetClassificationCodes", args, func(ctx context.Context) (*ClassificationCodes, error) {
		return c.base.GetClassificationCodes(ctx, classificationID, language, atDate, level, variant)
	})
}

// Invalidate drops every cached classification response.
func (c *CachedClient) Invalidate(ctx context.Context) error {
	return c.decorator.Invalidate(ctx)
}

// Stats reports cache activity.
func (c *CachedClient) Stats() clientcache.Stats {
	return c.decorator.Stats()
}

var _ Client = (*CachedClient)(nil)
