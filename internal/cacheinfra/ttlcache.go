package cacheinfra

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

// ErrNilFetchFn is returned when GetOrFetch is called without a fetch function.
var ErrNilFetchFn = errors.New("cacheinfra: fetchFn cannot be nil")

// TTLCacheService is a CacheService backed by ttlcache. Concurrent misses for
// the same key are collapsed into one fetch with singleflight.
type TTLCacheService struct {
	cache  *ttlcache.Cache[string, any]
	group  singleflight.Group
	closer sync.Once
}

// NewTTLCacheService validates cfg and starts a ttlcache instance with its
// expiry loop running in the background.
func NewTTLCacheService(cfg Config) (*TTLCacheService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := ttlcache.New(
		ttlcache.WithTTL[string, any](cfg.TTL),
		ttlcache.WithCapacity[string, any](uint64(cfg.Capacity)),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)
	go c.Start()

	return &TTLCacheService{cache: c}, nil
}

// GetOrFetch returns the cached value for key, or runs fetchFn once for all
// concurrent callers and stores its result on success.
func (s *TTLCacheService) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error) {
	if fetchFn == nil {
		return nil, ErrNilFetchFn
	}

	if item := s.cache.Get(key); item != nil {
		return item.Value(), nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// another flight may have stored the value after our first lookup
		if item := s.cache.Get(key); item != nil {
			return item.Value(), nil
		}

		value, err := fetchFn(ctx)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, value, ttlcache.DefaultTTL)
		return value, nil
	})
	return v, err
}

// Delete removes a single entry from the cache.
func (s *TTLCacheService) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

// DeleteByPrefix removes all entries whose key starts with prefix.
func (s *TTLCacheService) DeleteByPrefix(_ context.Context, prefix string) error {
	for _, key := range s.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
	return nil
}

// Len returns the number of stored entries, including expired ones that have
// not been swept yet.
func (s *TTLCacheService) Len() int {
	return s.cache.Len()
}

// Close stops the expiry loop.
func (s *TTLCacheService) Close() error {
	s.closer.Do(s.cache.Stop)
	return nil
}
