package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bigpicture/pkg/cache"
	"github.com/matzehuels/bigpicture/pkg/geometry"
	"github.com/matzehuels/bigpicture/pkg/observability"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
	"github.com/matzehuels/bigpicture/pkg/tree"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete extract → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Extract
	extractStart := time.Now()
	root, extractHit, err := r.ExtractWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Tree = root
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.NodeCount = tree.Count(root)
	result.Stats.Depth = tree.Depth(root)
	result.CacheInfo.ExtractHit = extractHit
	if data, err := tree.Marshal(root); err == nil {
		result.TreeHash = cache.Hash(data)
	}

	r.Logger.Info("extracted hierarchy",
		"nodes", result.Stats.NodeCount,
		"depth", result.Stats.Depth,
		"duration", result.Stats.ExtractTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.BoxCount = l.Len()
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"boxes", l.Len(),
		"width", l.Width(),
		"height", l.Height(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, root, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExtractWithCacheInfo extracts the hierarchy with caching and returns cache
// hit info. Tree files are always read directly.
func (r *Runner) ExtractWithCacheInfo(ctx context.Context, opts Options) (root *tree.Node, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExtract(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnExtractStart(ctx, opts.String())
	defer func() {
		n := 0
		if root != nil {
			n = tree.Count(root)
		}
		observability.Pipeline().OnExtractComplete(ctx, opts.String(), n, time.Since(start), err)
	}()

	if opts.TreeFile != "" {
		root, err = Extract(ctx, opts)
		return root, false, err
	}

	fingerprint, err := Fingerprint(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.TreeKey(fingerprint, opts.TreeKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if root, ok := r.cachedTree(ctx, cacheKey); ok {
			return root, true, nil
		}
	}

	root, err = Extract(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := tree.Marshal(root); err == nil {
		r.store(ctx, "tree", cacheKey, data, cache.TTLTree)
	}
	return root, false, nil
}

// Extract is a convenience wrapper that calls ExtractWithCacheInfo and discards the cache hit info.
func (r *Runner) Extract(ctx context.Context, opts Options) (*tree.Node, error) {
	root, _, err := r.ExtractWithCacheInfo(ctx, opts)
	return root, err
}

// ComputeLayoutWithCacheInfo lays out root with caching and returns cache
// hit info. Cached geometry is parsed back into a live store, so the result
// can be toggled either way.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, root *tree.Node, opts Options) (l *layout.Layout, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, tree.Count(root))
	defer func() {
		n := 0
		if l != nil {
			n = l.Len()
		}
		observability.Pipeline().OnLayoutComplete(ctx, n, time.Since(start), err)
	}()

	treeData, err := tree.Marshal(root)
	if err != nil {
		return nil, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(treeData), keyOpts)

	if data, ok := r.lookup(ctx, "layout", cacheKey); ok {
		if doc, err := geometry.Unmarshal(data); err == nil {
			if cached, err := layout.Parse(doc); err == nil {
				return cached, true, nil
			}
		}
		// If deserialization fails, fall through to recompute
		r.Logger.Debug("discarding unreadable layout entry", "key", cacheKey)
	}

	l, err = BuildLayout(root, opts)
	if err != nil {
		return nil, false, err
	}
	if data, err := geometry.Marshal(l.Export()); err == nil {
		r.store(ctx, "layout", cacheKey, data, cache.TTLLayout)
	}
	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, root *tree.Node, opts Options) (*layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, root, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *layout.Layout, root *tree.Node, opts Options) (artifacts map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	// Compute cache key from layout data
	layoutData, err := geometry.Marshal(l.Export())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := r.lookup(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if !ok {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := RenderFromLayout(ctx, l, root, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *layout.Layout, root *tree.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, root, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) cachedTree(ctx context.Context, key string) (*tree.Node, bool) {
	data, ok := r.lookup(ctx, "tree", key)
	if !ok {
		return nil, false
	}
	root, err := tree.Read(bytes.NewReader(data))
	if err != nil {
		r.Logger.Debug("discarding unreadable tree entry", "key", key, "error", err)
		return nil, false
	}
	return root, true
}

// lookup reads key and reports hits and misses to the cache hooks. Backend
// errors count as misses.
func (r *Runner) lookup(ctx context.Context, stage, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "stage", stage, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, stage)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, stage)
	return data, true
}

func (r *Runner) store(ctx context.Context, stage, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "stage", stage, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, stage, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
