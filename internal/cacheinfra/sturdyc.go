package cacheinfra

import (
	"context"
	"strings"

	"github.com/viccon/sturdyc"
)

// SturdycService wraps a sturdyc client. sturdyc deduplicates in-flight
// fetches per key and never stores the result of a failed fetch.
type SturdycService struct {
	client *sturdyc.Client[any]
}

// NewSturdycService validates cfg and initializes a sturdyc client with it.
func NewSturdycService(cfg Config) (*SturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[any](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &SturdycService{client: client}, nil
}

// nilValue stands in for a nil result. sturdyc asserts every fetched value
// to the client type and rejects an untyped nil, which would replace the
// fetch error with sturdyc.ErrInvalidType.
type nilValue struct{}

// GetOrFetch returns the cached value for key, or runs fetchFn and stores its
// result when the key is missing or expired. Errors from fetchFn are returned
// unchanged.
func (s *SturdycService) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error) {
	if fetchFn == nil {
		return nil, ErrNilFetchFn
	}

	value, err := s.client.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		value, err := fetchFn(ctx)
		if err != nil {
			return nilValue{}, err
		}
		if value == nil {
			return nilValue{}, nil
		}
		return value, nil
	})

	if _, ok := value.(nilValue); ok {
		value = nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Delete removes a single entry from the cache.
func (s *SturdycService) Delete(_ context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix removes all entries whose key starts with prefix.
func (s *SturdycService) DeleteByPrefix(_ context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}

// Len returns the number of stored entries.
func (s *SturdycService) Len() int {
	return s.client.Size()
}

// Close is a no-op; sturdyc has no resources to release.
func (s *SturdycService) Close() error {
	return nil
}
