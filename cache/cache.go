// Package cache provides small byte-value caches with expiry: an
// in-process memory cache and a disk cache shared between processes.
package cache

import "time"

// Cache is the common surface of the memory and disk stores.
type Cache interface {
	// Get returns the cached value and whether a live entry exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key. A zero ttl uses the store's default.
	Set(key string, value []byte, ttl time.Duration) error

	// Delete removes the entry, if present.
	Delete(key string) error

	// Flush removes every entry.
	Flush() error
}
