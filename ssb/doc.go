// Package ssb reads classifications from the Statistics Norway (SSB) Klass
// API and exposes them as codelist providers.
//
// HTTPClient performs the requests, CachedClient memoizes them through a
// clientcache.Decorator, and ClassificationProvider maps the codes onto
// codelist options:
//
//	base := ssb.NewHTTPClient(ssb.DefaultSettings())
//	client := ssb.NewCachedClient(base, clientcache.New(ssb.CacheNamespace, svc, cache.NewDefaultKeySerializer()))
//	sex := ssb.NewClassificationProvider("kjonn", int(ssb.Sex), client, nil)
package ssb
