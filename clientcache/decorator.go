package clientcache

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/goliatone/go-codelists/cache"
)

// Decorator holds the caching state shared by the methods of one cached client.
type Decorator struct {
	namespace     string
	cache         cache.CacheService
	keySerializer cache.KeySerializer
	keyRegistry   *xsync.MapOf[string, time.Time] // key -> last access
	keyTTL        time.Duration
	now           func() time.Time
	logger        *slog.Logger
	attrs         metric.MeasurementOption

	hits   atomic.Int64
	misses atomic.Int64
	tracks atomic.Uint64
}

// pruneEvery is how many Fetch calls pass between key registry sweeps.
const pruneEvery = 128

// Stats is a snapshot of decorator activity.
type Stats struct {
	Hits   int64
	Misses int64
	Keys   int
}

// Option configures a Decorator.
type Option func(*Decorator)

// WithLogger sets the logger used for miss and failure events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decorator) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithKeyTTL drops registry keys not accessed for ttl. It should match the
// cache TTL: a key idle that long has expired from the cache. Zero keeps keys
// until they are invalidated.
func WithKeyTTL(ttl time.Duration) Option {
	return func(d *Decorator) {
		if ttl > 0 {
			d.keyTTL = ttl
		}
	}
}

// New creates a Decorator whose keys are prefixed with namespace.
func New(namespace string, cacheService cache.CacheService, keySerializer cache.KeySerializer, opts ...Option) *Decorator {
	d := &Decorator{
		namespace:     namespace,
		cache:         cacheService,
		keySerializer: keySerializer,
		keyRegistry:   xsync.NewMapOf[string, time.Time](),
		now:           time.Now,
		logger:        slog.Default(),
		attrs:         metric.WithAttributes(attribute.String("namespace", namespace)),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("namespace", namespace)
	return d
}

// Namespace returns the key prefix of this decorator.
func (d *Decorator) Namespace() string {
	return d.namespace
}

// Key returns the cache key for method called with args.
func (d *Decorator) Key(method string, args ...any) string {
	return d.keySerializer.SerializeKey(d.methodPrefix(method), args...)
}

func (d *Decorator) methodPrefix(method string) string {
	return d.namespace + cache.KeySeparator + method
}

// Fetch returns the cached result for method and args, or runs fn and caches
// its result. Errors from fn are returned unchanged and never cached.
func Fetch[T any](ctx context.Context, d *Decorator, method string, args []any, fn cache.FetchFn[T]) (T, error) {
	key := d.Key(method, args...)
	d.trackKey(key)

	if refreshRequested(ctx) {
		if err := d.cache.Delete(ctx, key); err != nil {
			d.logger.WarnContext(ctx, "failed to drop entry before refresh", "key", key, "error", err)
		}
	}

	var fetched atomic.Bool
	result, err := cache.GetOrFetch(ctx, d.cache, key, func(ctx context.Context) (T, error) {
		fetched.Store(true)
		d.logger.DebugContext(ctx, "codelist cache miss", "key", key)

		value, err := fn(ctx)
		if err != nil {
			d.logger.DebugContext(ctx, "codelist fetch failed", "key", key, "error", err)
		}
		return value, err
	})

	if fetched.Load() {
		d.misses.Add(1)
		cacheMisses.Add(ctx, 1, d.attrs)
	} else if err == nil {
		d.hits.Add(1)
		cacheHits.Add(ctx, 1, d.attrs)
	}

	return result, err
}

// Invalidate removes every entry this decorator has written, including
// entries whose keys were already pruned from the registry.
func (d *Decorator) Invalidate(ctx context.Context) error {
	prefix := d.namespace + cache.KeySeparator
	err := d.invalidate(ctx, func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
	if prefixErr := d.cache.DeleteByPrefix(ctx, prefix); prefixErr != nil && err == nil {
		err = prefixErr
	}
	return err
}

// InvalidateMethod removes the entries written for one method.
func (d *Decorator) InvalidateMethod(ctx context.Context, method string) error {
	prefix := d.methodPrefix(method)
	return d.invalidate(ctx, func(key string) bool {
		return key == prefix || strings.HasPrefix(key, prefix+cache.KeySeparator)
	})
}

// Stats returns hit and miss counters and the number of tracked keys.
func (d *Decorator) Stats() Stats {
	d.prune()

	return Stats{
		Hits:   d.hits.Load(),
		Misses: d.misses.Load(),
		Keys:   d.keyRegistry.Size(),
	}
}

// trackKey registers a cache key in the key registry for later invalidation
func (d *Decorator) trackKey(key string) {
	d.keyRegistry.Store(key, d.now())
	if d.tracks.Add(1)%pruneEvery == 0 {
		d.prune()
	}
}

// prune drops keys idle for longer than keyTTL. The registry otherwise grows
// by one key per classification, language and day.
func (d *Decorator) prune() {
	if d.keyTTL <= 0 {
		return
	}
	cutoff := d.now().Add(-d.keyTTL)
	d.keyRegistry.Range(func(key string, seen time.Time) bool {
		if seen.Before(cutoff) {
			d.keyRegistry.Compute(key, func(current time.Time, loaded bool) (time.Time, bool) {
				return current, !loaded || current.Before(cutoff)
			})
		}
		return true
	})
}

// invalidate removes all tracked keys accepted by match
func (d *Decorator) invalidate(ctx context.Context, match func(string) bool) error {
	d.prune()

	var keysToDelete []string
	d.keyRegistry.Range(func(key string, _ time.Time) bool {
		if match(key) {
			keysToDelete = append(keysToDelete, key)
		}
		return true
	})

	var firstErr error
	for _, key := range keysToDelete {
		if err := d.cache.Delete(ctx, key); err != nil {
			d.logger.WarnContext(ctx, "failed to delete cache entry", "key", key, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		d.keyRegistry.Delete(key)
	}
	return firstErr
}
