// Package cache stores computed layouts and rendered artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for multi-instance servers
//   - [NullCache]: caching disabled
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the inputs that
// determine an entry; [ScopedKeyer] prefixes keys so several dashboards can
// share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Layouts depend only on dimensions, item count and
// sizing constants, so they live longest. Artifacts embed site state and go
// stale with it. Loaded overviews are kept just long enough to spare a
// source the burst of requests one dashboard refresh makes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 30 * time.Second
	TTLOverview = 10 * time.Second
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
