// Package cache provides byte-level caching backends for GitHub API responses.
//
// Three backends implement [Cache]:
//   - [NullCache]: never stores anything (the default; every request is fresh)
//   - [FileCache]: JSON files under the user cache directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for multi-instance servers
//
// Keys are built with a [Keyer] so that the same URL always maps to the
// same entry and authenticated responses can be scoped apart from
// anonymous ones with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with a per-entry TTL.
// A TTL of 0 means the entry never expires.
type Cache interface {
	// Get returns the payload for key. The bool is false on a miss or an
	// expired entry; err is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
