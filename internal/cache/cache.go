package cache

import "errors"

// ErrEmptyKey is returned when a cache operation is given an empty key
var ErrEmptyKey = errors.New("cache: empty key")

// Cache is a key-value store for serialized values.
// Entries never expire; they stay until deleted or cleared.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
	Clear() error
}
