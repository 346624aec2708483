package clientcache

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-codelists/cache"
)

func newDecorator(t *testing.T, namespace string) (*Decorator, cache.CacheService) {
	t.Helper()

	svc, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)

	return New(namespace, svc, cache.NewDefaultKeySerializer()), svc
}

type counter struct {
	calls atomic.Int32
}

func (c *counter) fetch(value string) cache.FetchFn[string] {
	return func(ctx context.Context) (string, error) {
		c.calls.Add(1)
		return value, nil
	}
}

func TestDecorator_Key(t *testing.T) {
	d, _ := newDecorator(t, "ssb")

	key := d.Key("GetClassificationCodes", 19, "nb", "2024-01-01", "", "")
	assert.Equal(t, strings.Join([]string{"ssb", "GetClassificationCodes", "19", "nb", "2024-01-01", "", ""}, cache.KeySeparator), key)
	assert.Equal(t, "ssb", d.Namespace())
}

func TestFetch_CachesSuccessfulResults(t *testing.T) {
	d, _ := newDecorator(t, "ssb")
	ctx := context.Background()
	c := &counter{}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, d, "Get", []any{1}, c.fetch("one"))
		require.NoError(t, err)
		assert.Equal(t, "one", got)
	}

	assert.EqualValues(t, 1, c.calls.Load())
	assert.Equal(t, Stats{Hits: 2, Misses: 1, Keys: 1}, d.Stats())
}

func TestFetch_DistinctArgsAreDistinctEntries(t *testing.T) {
	d, _ := newDecorator(t, "ssb")
	ctx := context.Background()
	c := &counter{}

	_, err := Fetch(ctx, d, "Get", []any{1, "nb"}, c.fetch("a"))
	require.NoError(t, err)
	_, err = Fetch(ctx, d, "Get", []any{1, "en"}, c.fetch("b"))
	require.NoError(t, err)
	_, err = Fetch(ctx, d, "Other", []any{1, "nb"}, c.fetch("c"))
	require.NoError(t, err)

	assert.EqualValues(t, 3, c.calls.Load())
}

func TestFetch_NamespacesDoNotShareEntries(t *testing.T) {
	svc, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	serializer := cache.NewDefaultKeySerializer()

	ssb := New("ssb", svc, serializer)
	admin := New("adminunits", svc, serializer)
	c := &counter{}

	_, err = Fetch(context.Background(), ssb, "Get", nil, c.fetch("ssb"))
	require.NoError(t, err)
	got, err := Fetch(context.Background(), admin, "Get", nil, c.fetch("admin"))
	require.NoError(t, err)

	assert.Equal(t, "admin", got)
	assert.EqualValues(t, 2, c.calls.Load())
}

func TestFetch_ErrorsAreReturnedAndNotCached(t *testing.T) {
	d, _ := newDecorator(t, "ssb")
	ctx := context.Background()
	boom := errors.New("boom")
	var calls atomic.Int32

	failing := func(ctx context.Context) (string, error) {
		calls.Add(1)
		return "", boom
	}

	_, err := Fetch(ctx, d, "Get", nil, failing)
	assert.ErrorIs(t, err, boom)
	_, err = Fetch(ctx, d, "Get", nil, failing)
	assert.ErrorIs(t, err, boom)

	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, int64(0), d.Stats().Hits)
}

func TestFetch_WithRefreshBypassesEntry(t *testing.T) {
	d, _ := newDecorator(t, "ssb")
	c := &counter{}

	_, err := Fetch(context.Background(), d, "Get", nil, c.fetch("v"))
	require.NoError(t, err)
	_, err = Fetch(WithRefresh(context.Background()), d, "Get", nil, c.fetch("v"))
	require.NoError(t, err)
	_, err = Fetch(context.Background(), d, "Get", nil, c.fetch("v"))
	require.NoError(t, err)

	assert.EqualValues(t, 2, c.calls.Load())
}

func TestDecorator_Invalidate(t *testing.T) {
	d, _ := newDecorator(t, "adminunits")
	ctx := context.Background()
	c := &counter{}

	_, err := Fetch(ctx, d, "GetCounties", nil, c.fetch("counties"))
	require.NoError(t, err)
	_, err = Fetch(ctx, d, "GetCountyCommunes", []any{"46"}, c.fetch("communes"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Stats().Keys)

	require.NoError(t, d.InvalidateMethod(ctx, "GetCounty"))
	assert.Equal(t, 2, d.Stats().Keys, "method names are matched whole")

	require.NoError(t, d.InvalidateMethod(ctx, "GetCountyCommunes"))
	assert.Equal(t, 1, d.Stats().Keys)

	_, err = Fetch(ctx, d, "GetCountyCommunes", []any{"46"}, c.fetch("communes"))
	require.NoError(t, err)
	assert.EqualValues(t, 3, c.calls.Load())

	require.NoError(t, d.Invalidate(ctx))
	assert.Equal(t, 0, d.Stats().Keys)

	_, err = Fetch(ctx, d, "GetCounties", nil, c.fetch("counties"))
	require.NoError(t, err)
	assert.EqualValues(t, 4, c.calls.Load())
}

func TestFetch_InterfaceResultKeepsError(t *testing.T) {
	type lister interface{ List() []string }

	d, _ := newDecorator(t, "ssb")
	boom := errors.New("upstream returned status 503")

	got, err := Fetch(context.Background(), d, "List", nil, func(ctx context.Context) (lister, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestDecorator_PrunesIdleKeys(t *testing.T) {
	svc, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)

	d := New("ssb", svc, cache.NewDefaultKeySerializer(), WithKeyTTL(time.Hour))
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()
	c := &counter{}

	_, err = Fetch(ctx, d, "Get", []any{"2024-06-07"}, c.fetch("old"))
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, err = Fetch(ctx, d, "Get", []any{"2024-06-08"}, c.fetch("new"))
	require.NoError(t, err)
	assert.Equal(t, 2, d.Stats().Keys)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, d.Stats().Keys, "key idle past the TTL is dropped")

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 0, d.Stats().Keys)
}

func TestDecorator_PruneDisabledByDefault(t *testing.T) {
	d, _ := newDecorator(t, "ssb")
	start := time.Now()
	d.now = func() time.Time { return start }

	_, err := Fetch(context.Background(), d, "Get", nil, (&counter{}).fetch("v"))
	require.NoError(t, err)

	d.now = func() time.Time { return start.Add(24 * 365 * time.Hour) }
	assert.Equal(t, 1, d.Stats().Keys)
}

func TestDecorator_InvalidateRemovesPrunedEntries(t *testing.T) {
	svc, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)

	d := New("ssb", svc, cache.NewDefaultKeySerializer(), WithKeyTTL(time.Minute))
	now := time.Now()
	d.now = func() time.Time { return now }
	ctx := context.Background()
	c := &counter{}

	_, err = Fetch(ctx, d, "Get", nil, c.fetch("v"))
	require.NoError(t, err)

	now = now.Add(time.Hour)
	require.Equal(t, 0, d.Stats().Keys)

	require.NoError(t, d.Invalidate(ctx))
	_, err = Fetch(ctx, d, "Get", nil, c.fetch("v"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, c.calls.Load())
}

func TestWithRefresh_NilContext(t *testing.T) {
	ctx := WithRefresh(nil)
	assert.True(t, refreshRequested(ctx))
	assert.False(t, refreshRequested(context.Background()))
}
