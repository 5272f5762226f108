// Package cache provides pluggable byte caches for rendered artifacts.
//
// Three backends are available:
//   - file: directory-backed, for CLI usage
//   - redis: shared cache for server deployments
//   - null: disabled caching
//
// Keys are derived from content hashes (see [Key]) so identical inputs and
// options hit the same entry regardless of backend.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Scoped wraps a cache with a key prefix for namespace isolation, e.g.
// separating layout entries from artifact entries in a shared Redis.
type Scoped struct {
	inner  Cache
	prefix string
}

// NewScoped creates a prefixed view of an existing cache.
func NewScoped(inner Cache, prefix string) *Scoped {
	return &Scoped{inner: inner, prefix: prefix}
}

func (c *Scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

func (c *Scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

func (c *Scoped) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close is a no-op: the wrapped cache owns the backend connection.
func (c *Scoped) Close() error { return nil }

var _ Cache = (*Scoped)(nil)
