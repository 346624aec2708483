// Package config loads the application configuration from an optional
// codelists.{yaml,json,toml} file and CODELISTS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/goliatone/go-codelists/adminunits"
	"github.com/goliatone/go-codelists/cache"
	"github.com/goliatone/go-codelists/ssb"
)

// EnvPrefix is prepended to every environment variable.
const EnvPrefix = "CODELISTS"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config aggregates configuration for the application.
// Each field is owned by its respective package.
type Config struct {
	Cache      cache.Config        `mapstructure:"cache"`
	SSB        ssb.Settings        `mapstructure:"ssb"`
	AdminUnits adminunits.Settings `mapstructure:"adminunits"`
	HTTP       HTTPConfig          `mapstructure:"http"`
	Log        LogConfig           `mapstructure:"log"`
}

// HTTPConfig configures the outbound HTTP client shared by the API clients.
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SlogLevel parses Level. Unknown values map to info.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Cache:      cache.DefaultConfig(),
		SSB:        ssb.DefaultSettings(),
		AdminUnits: adminunits.DefaultSettings(),
		HTTP:       HTTPConfig{Timeout: 30 * time.Second},
		Log:        LogConfig{Level: "info", Format: LogFormatText},
	}
}

// Option customizes the viper instance used by Load, before any source is read.
type Option func(*viper.Viper)

// WithConfigFile reads path instead of searching for codelists.* in the
// working directory. The file must exist.
func WithConfigFile(path string) Option {
	return func(v *viper.Viper) {
		if path != "" {
			v.SetConfigFile(path)
		}
	}
}

// Load reads configuration from files and environment variables.
// Environment variables use the prefix "CODELISTS" and the dot character
// in keys is replaced by an underscore. For example, "ssb.baseapiurl" becomes
// "CODELISTS_SSB_BASEAPIURL".
func Load(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("codelists")
	v.AddConfigPath(".")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, cfg)
	for _, opt := range opts {
		opt(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Cache),
		validation.Field(&c.SSB, validation.By(func(any) error { return absoluteURL(c.SSB.BaseAPIURL) })),
		validation.Field(&c.AdminUnits, validation.By(func(any) error { return absoluteURL(c.AdminUnits.BaseAPIURL) })),
		validation.Field(&c.HTTP),
		validation.Field(&c.Log),
	)
}

// Validate checks the HTTP section.
func (c HTTPConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

// Validate checks the log section.
func (c LogConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.In(LogFormatText, LogFormatJSON)),
	)
}

func absoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("baseapiurl must be an absolute URL")
	}
	return nil
}

func bindEnvs(v *viper.Viper, cfg any, parts ...string) {
	val := reflect.ValueOf(cfg)
	typ := reflect.TypeOf(cfg)
	if typ.Kind() == reflect.Ptr {
		if val.IsNil() {
			val = reflect.New(typ.Elem())
		}
		val = val.Elem()
		typ = typ.Elem()
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("mapstructure")
		if tag == "" {
			tag = strings.ToLower(f.Name)
		}
		key := append(append([]string(nil), parts...), tag)
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(time.Time{}) {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		if f.Type.Kind() == reflect.Ptr && f.Type.Elem().Kind() == reflect.Struct {
			bindEnvs(v, val.Field(i).Interface(), key...)
			continue
		}
		_ = v.BindEnv(strings.Join(key, "."))
	}
}
