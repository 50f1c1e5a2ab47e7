// Package cache provides a small TTL cache used to hold the last good
// snapshot fetched from the external market indexer, so listing requests
// keep working between polls and across brief indexer outages.
package cache

import "time"

// Cache is the interface for caching indexer snapshots.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found, (nil, false) if not found.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with a TTL.
	Set(key string, value interface{}, ttl time.Duration) bool

	// Delete removes a value from the cache.
	Delete(key string)

	// Close closes the cache and releases resources.
	Close()
}
