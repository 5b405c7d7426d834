// Package cache provides byte caches for derived jsonscope artifacts.
//
// Parsing and transforming a document is cheap; rendering its diagram through
// Graphviz is not. The pipeline stores diagram sources and rendered images
// under content-addressed keys, so re-rendering an unchanged document is a
// single lookup.
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//
// # Keys
//
// A [Keyer] derives keys from the document hash and the options that affect
// the output. [ScopedKeyer] prefixes every key, which separates tenants or
// deployments sharing one Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default lifetimes per entry kind.
const (
	TTLDiagram  = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
