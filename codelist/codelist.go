// Package codelist defines the options-provider contract consumed by form
// rendering hosts, the option types it returns, and the error kinds shared by
// every provider in this module.
package codelist

import (
	"context"
	"maps"
)

// Option is a single value/label pair for a selection control.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// AppOptions is the result of a provider lookup.
type AppOptions struct {
	Options []Option `json:"options"`

	// Parameters echoes the filters the options were resolved with, after
	// provider defaults were applied.
	Parameters map[string]string `json:"parameters,omitempty"`

	// IsCacheable tells the host the result depends only on Parameters and
	// language and may be cached downstream.
	IsCacheable bool `json:"isCacheable"`
}

// Provider resolves options for a language and a set of filters.
type Provider interface {
	ID() string
	GetOptions(ctx context.Context, language string, filters map[string]string) (*AppOptions, error)
}

// MergeFilters returns a new map holding defaults overlaid with overrides.
// On key collision the override wins. Neither input is modified.
func MergeFilters(defaults, overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(overrides))
	maps.Copy(merged, defaults)
	maps.Copy(merged, overrides)
	return merged
}
