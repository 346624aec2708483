package cache

import (
	"time"

	"github.com/goliatone/go-codelists/internal/cacheinfra"
)

// Supported cache backends.
const (
	BackendSturdyc  = cacheinfra.BackendSturdyc
	BackendTTLCache = cacheinfra.BackendTTLCache
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend            string              `mapstructure:"backend"`
	Capacity           int                 `mapstructure:"capacity"`
	NumShards          int                 `mapstructure:"numshards"`
	TTL                time.Duration       `mapstructure:"ttl"`
	EvictionPercentage int                 `mapstructure:"evictionpercentage"`
	EarlyRefresh       *EarlyRefreshConfig `mapstructure:"earlyrefresh"`
	EvictionInterval   time.Duration       `mapstructure:"evictioninterval"`
}

// EarlyRefreshConfig mirrors the underlying sturdyc early refresh options.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration `mapstructure:"minasyncrefreshtime"`
	MaxAsyncRefreshTime time.Duration `mapstructure:"maxasyncrefreshtime"`
	SyncRefreshTime     time.Duration `mapstructure:"syncrefreshtime"`
	RetryBaseDelay      time.Duration `mapstructure:"retrybasedelay"`
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the cache service for the configured backend.
func NewCacheService(cfg Config) (CacheService, error) {
	internal := cfg.toInternal()
	if err := internal.Validate(); err != nil {
		return nil, err
	}

	switch internal.Backend {
	case BackendTTLCache:
		return cacheinfra.NewTTLCacheService(internal)
	default:
		return cacheinfra.NewSturdycService(internal)
	}
}

func (c Config) toInternal() cacheinfra.Config {
	var early *cacheinfra.EarlyRefreshConfig
	if c.EarlyRefresh != nil {
		early = &cacheinfra.EarlyRefreshConfig{
			MinAsyncRefreshTime: c.EarlyRefresh.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: c.EarlyRefresh.MaxAsyncRefreshTime,
			SyncRefreshTime:     c.EarlyRefresh.SyncRefreshTime,
			RetryBaseDelay:      c.EarlyRefresh.RetryBaseDelay,
		}
	}

	return cacheinfra.Config{
		Backend:            c.Backend,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EarlyRefresh:       early,
		EvictionInterval:   c.EvictionInterval,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	var early *EarlyRefreshConfig
	if cfg.EarlyRefresh != nil {
		early = &EarlyRefreshConfig{
			MinAsyncRefreshTime: cfg.EarlyRefresh.MinAsyncRefreshTime,
			MaxAsyncRefreshTime: cfg.EarlyRefresh.MaxAsyncRefreshTime,
			SyncRefreshTime:     cfg.EarlyRefresh.SyncRefreshTime,
			RetryBaseDelay:      cfg.EarlyRefresh.RetryBaseDelay,
		}
	}

	return Config{
		Backend:            cfg.Backend,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EarlyRefresh:       early,
		EvictionInterval:   cfg.EvictionInterval,
	}
}
