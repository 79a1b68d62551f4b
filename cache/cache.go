// Package cache provides bounded, time-boxed caches for resolved content.
package cache

import "time"

// Defaults for the content cache.
const (
	// DefaultMaxEntries bounds the in-memory cache size.
	DefaultMaxEntries = 500
	// DefaultTTL is how long an entry stays valid.
	DefaultTTL = 24 * time.Hour
)
