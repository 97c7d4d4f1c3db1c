package cache

import "time"

// Cache defines the string-keyed temporal cache API with per-entry TTL.
// Implementations must be goroutine-safe; gin serves requests concurrently.
type Cache[V any] interface {
	// Get returns the value and whether it was present and not expired.
	// An expired entry is deleted as a side effect (lazy expiry).
	Get(key string) (V, bool)

	// Set stores the value with an optional TTL. If ttl <= 0, the configured
	// default TTL applies. May evict one entry to honor the capacity bound.
	Set(key string, value V, ttl time.Duration)

	// Has reports whether a key is present and not expired, with the same
	// lazy-expiry side effect as Get.
	Has(key string) bool

	// Delete removes a key if present.
	Delete(key string)

	// Clear removes all entries and the durable record, if any.
	Clear()

	// Len returns the number of entries physically held, expired or not.
	Len() int

	// Keys returns the keys of all entries physically held.
	Keys() []string

	// PurgeExpired scans and removes expired entries, returning how many
	// were removed. Intended for a caller-owned periodic timer.
	PurgeExpired() int

	// Stats returns read-only introspection of the cache configuration.
	Stats() Stats
}

// Stats is a read-only snapshot of cache size and configuration.
type Stats struct {
	Size       int           `json:"size"`
	MaxEntries int           `json:"maxEntries"`
	DefaultTTL time.Duration `json:"defaultTtl"`
}
