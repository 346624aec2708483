package codelist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProvider struct {
	id      string
	options []Option
}

func (p staticProvider) ID() string { return p.id }

func (p staticProvider) GetOptions(_ context.Context, _ string, filters map[string]string) (*AppOptions, error) {
	return &AppOptions{Options: p.options, Parameters: filters, IsCacheable: true}, nil
}

func TestMergeFilters(t *testing.T) {
	defaults := map[string]string{"level": "1", "variant": "regions"}
	overrides := map[string]string{"level": "2", "parentCode": "A"}

	merged := MergeFilters(defaults, overrides)

	assert.Equal(t, map[string]string{"level": "2", "variant": "regions", "parentCode": "A"}, merged)
	assert.Equal(t, map[string]string{"level": "1", "variant": "regions"}, defaults, "defaults must not be mutated")
	assert.Equal(t, map[string]string{"level": "2", "parentCode": "A"}, overrides, "overrides must not be mutated")
}

func TestMergeFilters_NilInputs(t *testing.T) {
	assert.Empty(t, MergeFilters(nil, nil))
	assert.Equal(t, map[string]string{"date": "2024-01-01"}, MergeFilters(nil, map[string]string{"date": "2024-01-01"}))
	assert.Equal(t, map[string]string{"date": "2024-01-01"}, MergeFilters(map[string]string{"date": "2024-01-01"}, nil))
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(
		staticProvider{id: "kjonn", options: []Option{{Value: "1", Label: "Mann"}, {Value: "2", Label: "Kvinne"}}},
		staticProvider{id: "fylker"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"fylker", "kjonn"}, reg.IDs())

	opts, err := reg.GetOptions(context.Background(), "kjonn", "nb", nil)
	require.NoError(t, err)
	assert.Len(t, opts.Options, 2)

	_, err = reg.Get("missing")
	assert.True(t, IsUnknownProvider(err))

	err = reg.Register(staticProvider{id: "fylker"})
	assert.True(t, IsDuplicateProvider(err))
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"upstream wrapped", UpstreamUnavailable(cause, "http://example", 0), IsUpstreamUnavailable},
		{"upstream status", UpstreamUnavailable(nil, "http://example", 503), IsUpstreamUnavailable},
		{"malformed", MalformedResponse(cause, "http://example"), IsMalformedResponse},
		{"invalid filter", InvalidFilterValue("date", "yesterday", cause), IsInvalidFilterValue},
		{"invalid filter without cause", InvalidFilterValue("language", "xx", nil), IsInvalidFilterValue},
		{"unknown provider", UnknownProvider("nope"), IsUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("outer: %w", tt.err)), "kind must survive wrapping")
		})
	}

	assert.False(t, IsMalformedResponse(UpstreamUnavailable(cause, "u", 0)))
	assert.False(t, IsUpstreamUnavailable(cause))
	assert.False(t, IsInvalidFilterValue(nil))
}
