// Package cache stores intermediate pipeline results between runs.
//
// # Overview
//
// Extraction, layout and rendering are deterministic, so each stage's
// output can be reused when its inputs have not changed. A [Keyer] derives
// content-addressed keys from the inputs; a [Cache] stores the bytes.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory (CLI default)
//   - [RedisCache]: shared cache for the HTTP viewer
//   - [NullCache]: disables caching
//
// # Keys
//
// Keys are "<stage>:<sha256>" where the hash covers every input that
// affects the stage's output. Use [NewScopedKeyer] to namespace keys when
// several projects share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiration.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}

// Expiration of each stage's entries.
const (
	TTLTree     = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// TreeKey addresses an extracted hierarchy.
	TreeKey(sourceHash string, opts TreeKeyOpts) string
	// LayoutKey addresses a geometry document.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
	// ArtifactKey addresses a rendered output.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// TreeKeyOpts are the extraction inputs besides the sources themselves.
type TreeKeyOpts struct {
	Languages    []string `json:"languages,omitempty"`
	IncludeOther bool     `json:"include_other,omitempty"`
	KeepEmpty    bool     `json:"keep_empty,omitempty"`
	Exclude      []string `json:"exclude,omitempty"`
}

// LayoutKeyOpts are the layout inputs besides the tree.
type LayoutKeyOpts struct {
	// ConfigHash identifies the layout constants.
	ConfigHash string `json:"config_hash"`
	// Collapsed lists collapsed box IDs in sorted order.
	Collapsed []string `json:"collapsed,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Query  string `json:"query,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail bool   `json:"detail,omitempty"`
	// MaxDepth limits node-link output.
	MaxDepth int `json:"max_depth,omitempty"`
	// Endpoint is the viewer API base baked into HTML pages.
	Endpoint string `json:"endpoint,omitempty"`
	// Scale applies to raster output.
	Scale float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes stage inputs into keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) TreeKey(sourceHash string, opts TreeKeyOpts) string {
	return hashKey("tree", sourceHash, opts)
}

func (DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
