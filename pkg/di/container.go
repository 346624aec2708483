package di

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-codelists/adminunits"
	"github.com/goliatone/go-codelists/cache"
	"github.com/goliatone/go-codelists/clientcache"
	"github.com/goliatone/go-codelists/codelist"
	"github.com/goliatone/go-codelists/config"
	"github.com/goliatone/go-codelists/ssb"
)

// Container wires the cache, the cached API clients and the provider
// registry. Every dependency is a singleton owned by the container.
type Container struct {
	config        config.Config
	logger        *slog.Logger
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	httpClient    *http.Client

	ssbClient        *ssb.CachedClient
	adminUnitsClient *adminunits.CachedClient
	registry         *codelist.Registry
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger handed to the clients and cache decorators.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the outbound HTTP client built from config.HTTP.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewContainer validates cfg and builds every component. The registry is
// populated with DefaultProviders.
func NewContainer(cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		config:        cfg,
		logger:        slog.Default(),
		keySerializer: cache.NewDefaultKeySerializer(),
		httpClient:    &http.Client{Timeout: cfg.HTTP.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	cacheService, err := cache.NewCacheService(cfg.Cache)
	if err != nil {
		return nil, err
	}
	c.cacheService = cacheService

	c.ssbClient = ssb.NewCachedClient(
		ssb.NewHTTPClient(cfg.SSB, ssb.WithHTTPClient(c.httpClient), ssb.WithClientLogger(c.logger)),
		c.newDecorator(ssb.CacheNamespace),
	)
	c.adminUnitsClient = adminunits.NewCachedClient(
		adminunits.NewHTTPClient(cfg.AdminUnits, adminunits.WithHTTPClient(c.httpClient), adminunits.WithLogger(c.logger)),
		c.newDecorator(adminunits.CacheNamespace),
	)

	registry, err := codelist.NewRegistry(DefaultProviders(c.ssbClient, c.adminUnitsClient)...)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.registry = registry

	return c, nil
}

// NewContainerWithDefaults creates a container from config.DefaultConfig.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	return NewContainer(config.DefaultConfig(), opts...)
}

// DefaultProviders returns the bundled codelists.
func DefaultProviders(ssbClient ssb.Client, adminUnitsClient adminunits.Client) []codelist.Provider {
	return []codelist.Provider{
		ssb.NewClassificationProvider("kjonn", int(ssb.Sex), ssbClient, nil),
		ssb.NewClassificationProvider("sivilstand", int(ssb.MaritalStatus), ssbClient, nil),
		ssb.NewClassificationProvider("naringsgruppering", int(ssb.IndustryGrouping), ssbClient, nil),
		ssb.NewClassificationProvider("yrker", int(ssb.Occupations), ssbClient, nil),
		ssb.NewClassificationProvider("land", int(ssb.Countries), ssbClient, nil),
		adminunits.NewCountiesProvider(adminUnitsClient),
		adminunits.NewCommunesProvider(adminUnitsClient),
	}
}

func (c *Container) newDecorator(namespace string) *clientcache.Decorator {
	return clientcache.New(namespace, c.cacheService, c.keySerializer,
		clientcache.WithLogger(c.logger),
		clientcache.WithKeyTTL(c.config.Cache.TTL),
	)
}

// Register adds a provider to the registry.
func (c *Container) Register(p codelist.Provider) error {
	return c.registry.Register(p)
}

func (c *Container) Registry() *codelist.Registry {
	return c.registry
}

func (c *Container) SSBClient() *ssb.CachedClient {
	return c.ssbClient
}

func (c *Container) AdminUnitsClient() *adminunits.CachedClient {
	return c.adminUnitsClient
}

// CacheService returns the shared cache service.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the shared key serializer.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Close releases the cache backend.
func (c *Container) Close() error {
	if closer, ok := c.cacheService.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
