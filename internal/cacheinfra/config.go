package cacheinfra

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/viccon/sturdyc"
)

// Backend names accepted by Config.Backend. An empty value selects sturdyc.
const (
	BackendSturdyc  = "sturdyc"
	BackendTTLCache = "ttlcache"
)

// Config holds the configuration shared by the cache adapters.
type Config struct {
	// Backend selects the adapter. Empty means BackendSturdyc.
	Backend string

	// Capacity defines the maximum number of entries that the cache can store.
	Capacity int

	// NumShards determines the number of sturdyc shards. Ignored by ttlcache.
	NumShards int

	// TTL is the time-to-live for cached entries. Classification data changes
	// at most daily, and every request already carries its as-of date.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries sturdyc evicts
	// when a shard reaches its capacity.
	EvictionPercentage int

	// EarlyRefresh configures sturdyc background refreshes. Nil disables them.
	EarlyRefresh *EarlyRefreshConfig

	// EvictionInterval sets how often sturdyc sweeps expired entries.
	// Zero value uses the sturdyc default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig configures early refresh behavior.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns a Config with sensible defaults for codelist lookups.
func DefaultConfig() Config {
	return Config{
		Backend:            BackendSturdyc,
		Capacity:           1000,
		NumShards:          16,
		TTL:                12 * time.Hour,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.In(BackendSturdyc, BackendTTLCache)),
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&c.NumShards, validation.Required, validation.Min(1)),
		validation.Field(&c.TTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.EvictionPercentage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.EarlyRefresh),
		validation.Field(&c.EvictionInterval, validation.Min(time.Duration(0))),
	)
}

// Validate checks the early refresh windows.
func (c EarlyRefreshConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.MinAsyncRefreshTime, validation.Min(time.Duration(0))),
		validation.Field(&c.MaxAsyncRefreshTime, validation.Min(c.MinAsyncRefreshTime)),
		validation.Field(&c.SyncRefreshTime, validation.Min(time.Duration(0))),
		validation.Field(&c.RetryBaseDelay, validation.Min(time.Duration(0))),
	)
}

// ToSturdycOptions converts the Config to sturdyc.Option slice.
// Capacity, NumShards, TTL, and EvictionPercentage are passed directly
// to sturdyc.New() and are not included in the options.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}

	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}

	return options
}
