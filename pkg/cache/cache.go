// Package cache stores computed snapshots and rendered artifacts.
//
// Three backends implement [Cache]:
//   - [NullCache]: stores nothing, used when caching is disabled
//   - [FileCache]: one JSON entry file per key under a directory, for the CLI
//   - [RedisCache]: shared storage for servers running several instances
//
// Keys are built by a [Keyer] from content hashes and the options that
// influence the cached value, so changing any option yields a new key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default time-to-live per entry type.
const (
	TTLSnapshot = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	// SnapshotKey keys a computed layout or transition frame of a scene.
	SnapshotKey(sceneHash string, opts SnapshotKeyOpts) string

	// ArtifactKey keys one rendered output of a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// SnapshotKeyOpts lists everything besides the scene that changes a snapshot.
type SnapshotKeyOpts struct {
	Layout   string  `json:"layout"`
	From     string  `json:"from,omitempty"`
	Progress float64 `json:"progress,omitempty"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// ArtifactKeyOpts lists everything besides the snapshot that changes an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Hidden bool   `json:"hidden,omitempty"`
	Labels bool   `json:"labels,omitempty"`
}

// DefaultKeyer produces "snapshot:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SnapshotKey(sceneHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", sceneHash, opts)
}

func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", snapshotHash, opts)
}
