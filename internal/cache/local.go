package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// LocalCache is an in-process cache for small, rarely changing records.
type LocalCache struct {
	cache *gocache.Cache
}

func NewLocalCache(defaultExpiration, cleanupInterval time.Duration) *LocalCache {
	return &LocalCache{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

func (c *LocalCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *LocalCache) Set(key string, value any) {
	c.cache.SetDefault(key, value)
}

func (c *LocalCache) Delete(key string) {
	c.cache.Delete(key)
}

// GetOrSet returns the cached value or stores the one produced by loader.
func (c *LocalCache) GetOrSet(key string, loader func() (any, error)) (any, error) {
	if val, found := c.cache.Get(key); found {
		return val, nil
	}
	val, err := loader()
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, val)
	return val, nil
}
