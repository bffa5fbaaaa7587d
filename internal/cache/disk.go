package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists entries as files so they survive process restarts
type DiskCache struct {
	dir string
	now func() time.Time
}

// NewDiskCache creates a disk cache rooted at dir. The directory is created lazily.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{
		dir: dir,
		now: time.Now,
	}
}

type diskEntry struct {
	Data     []byte    `json:"data"`
	StoredAt time.Time `json:"stored_at"`
}

// Get retrieves a value from the disk cache. Unreadable or corrupt entries are misses.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in the disk cache. The write is atomic: readers see
// either the previous entry or the new one.
func (c *DiskCache) Set(key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}

	data, err := json.Marshal(diskEntry{Data: value, StoredAt: c.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close cache file: %w", err)
	}

	if err := os.Rename(tmpName, c.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename cache file: %w", err)
	}

	return nil
}

// Delete removes a value from the disk cache. Deleting a missing key is not an error.
func (c *DiskCache) Delete(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

// Clear removes all cached files
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, url.PathEscape(key)+".cache")
}
