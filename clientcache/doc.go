// Package clientcache provides the read-through caching core shared by the
// cached API clients.
//
// A Decorator owns a key namespace and tracks every key it writes so that a
// client's entries can be invalidated together. Cached clients call Fetch from
// each read method:
//
//	func (c *CachedClient) GetCounties(ctx context.Context) ([]County, error) {
//		return clientcache.Fetch(ctx, c.decorator, "GetCounties", nil, c.base.GetCounties)
//	}
//
// The key is built from the namespace, the method name and every argument, so
// two calls share an entry only when all of their inputs are equal. Failed
// fetches, including cancelled ones, are never stored.
//
// WithRefresh forces a single call to bypass the stored entry.
package clientcache
