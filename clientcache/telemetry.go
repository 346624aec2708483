package clientcache

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter
)

func init() {
	meter := otel.Meter("github.com/goliatone/go-codelists/clientcache")

	var err error

	cacheHits, err = meter.Int64Counter(
		"codelists.cache.hits",
		metric.WithDescription("Number of codelist lookups served from the cache"),
	)
	if err != nil {
		otel.Handle(err)
	}

	cacheMisses, err = meter.Int64Counter(
		"codelists.cache.misses",
		metric.WithDescription("Number of codelist lookups that reached the upstream API"),
	)
	if err != nil {
		otel.Handle(err)
	}
}
