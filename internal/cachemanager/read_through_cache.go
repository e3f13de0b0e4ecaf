package cachemanager

import (
	"context"
	"time"
)

// Loader computes the value for a cache miss.
type Loader[V any, I any] func(ctx context.Context, input I) (V, error)

// ReadThroughCache serves values from a CacheManager and falls back to a
// loader on a miss. Loader errors are returned and never cached.
type ReadThroughCache[K comparable, V any, I any] struct {
	cache  CacheManager[K, V]
	load   Loader[V, I]
	ttl    time.Duration
	bypass bool
}

// NewReadThroughCache wraps cache with load. When bypass is set every call
// goes to load and the cache is left untouched.
func NewReadThroughCache[K comparable, V any, I any](cache CacheManager[K, V], load Loader[V, I], ttl time.Duration, bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{cache: cache, load: load, ttl: ttl, bypass: bypass}
}

// Get returns the cached value for key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if r.bypass {
		return r.load(ctx, input)
	}
	if v, ok := r.cache.GetWithRefresh(ctx, key, r.ttl); ok {
		return v, nil
	}

	v, err := r.load(ctx, input)
	if err != nil {
		return v, err
	}
	r.cache.Set(ctx, key, v, r.ttl)
	return v, nil
}

// Cache returns the underlying cache.
func (r *ReadThroughCache[K, V, I]) Cache() CacheManager[K, V] {
	return r.cache
}
