package cache

import "errors"

// LayeredCache checks memory first, then disk
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a memory-over-disk cache rooted at diskDir
func NewLayeredCache(diskDir string) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(),
		disk:   NewDiskCache(diskDir),
	}
}

// Get retrieves a value, promoting disk hits into memory
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers. The disk write decides success.
func (c *LayeredCache) Set(key string, value []byte) error {
	if err := c.disk.Set(key, value); err != nil {
		return err
	}
	return c.memory.Set(key, value)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

// Clear removes all values from both layers
func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}
