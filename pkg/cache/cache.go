// Package cache provides content-addressed caching for layout results.
//
// Layouts are deterministic functions of their input, so the cache key is
// a SHA-256 hash of the serialized DiagramInput plus the layout options.
// Backends: file (CLI default), Redis (long-running services), and a
// null cache that disables caching entirely.
package cache

import (
	"context"
	"time"
)

// LayoutTTL is how long cached layout results live. Layouts are immutable
// for a given key, so the TTL mostly bounds disk/memory growth.
const LayoutTTL = 7 * 24 * time.Hour

// Cache is the storage interface for cached blobs.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found; (nil, false, nil) is a plain miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts are the options that affect layout output and therefore
// participate in the cache key.
type LayoutKeyOpts struct {
	Archetype string `json:"archetype"`
	// OverlaysHash is a content hash of the overlay specs, empty when the
	// archetype defaults apply.
	OverlaysHash string `json:"overlays_hash,omitempty"`
	// Version invalidates old entries when the layout algorithms change.
	Version string `json:"version,omitempty"`
}

// Keyer generates cache keys. Implementations must be deterministic:
// identical inputs always produce identical keys.
type Keyer interface {
	// LayoutKey generates a key for a layout result, from the content
	// hash of the serialized input and the layout options.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256 under fixed key prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key in the form "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
