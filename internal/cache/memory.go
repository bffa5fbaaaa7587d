package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the process-local front layer
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries never expire
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 10*time.Minute),
	}
}

// Get retrieves a copy of the stored value
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	b, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b...), true
}

// Set stores a copy of value under key
func (c *MemoryCache) Set(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	c.cache.Set(key, append([]byte(nil), value...), gocache.NoExpiration)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
