// Package cache provides the read-through cache contract and key serialization
// used by the codelist client decorators.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: read-through caching backed by sturdyc or ttlcache
//   - KeySerializer: builds stable cache keys from method names and arguments
//
// Backends guarantee that a failed fetch is never stored and that concurrent
// misses on one key trigger a single fetch.
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("ssb::GetClassificationCodes", 19, "nb", "2024-01-01", "", "")
//
//	codes, err := cache.GetOrFetch(ctx, svc, key, func(ctx context.Context) (*ssb.ClassificationCodes, error) {
//		return client.GetClassificationCodes(ctx, 19, "nb", date, "", "")
//	})
//
// # Key Serialization Strategy
//
// Each argument becomes one segment joined by KeySeparator:
//
//   - Strings and basic types: direct string representation
//   - time.Time: yyyy-MM-dd for midnight values, RFC 3339 otherwise
//   - Slices/arrays: recursive serialization of elements
//   - Maps: sorted key-value pairs for deterministic output
//   - Structs: exported fields with name:value pairs
//
// Segments longer than MaxSegmentLength, or containing KeySeparator, are
// replaced by an xxhash digest. Keys stay bounded and one argument can never
// spill into the next.
//
// # Configuration
//
// Config.TTL bounds how long a response is served from memory. Config.Backend
// selects "sturdyc" (default, sharded, with optional early refresh) or
// "ttlcache" (LRU capacity with singleflight coalescing).
package cache
