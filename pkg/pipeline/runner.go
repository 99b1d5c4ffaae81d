package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/shelfview/pkg/cache"
	"github.com/matzehuels/shelfview/pkg/observability"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/snapshot"
)

// Runner executes the pipeline with caching.
//
// The Runner holds no per-run state, so one Runner may serve several
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// selects the default keyer.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	sc, err := LoadScene(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Scene = sc
	result.SceneHash = cache.Hash(sc.Canonical())
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Sections = sc.NumberOfSections()
	result.Stats.Items = sc.ItemCount()

	r.Logger.Debug("loaded scene",
		"name", sc.Name,
		"sections", result.Stats.Sections,
		"items", result.Stats.Items,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	data, layoutHit, err := r.SnapshotWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Snapshot = data
	result.SnapshotHash = cache.Hash(data)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"layout", opts.String(),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, data, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SnapshotWithCacheInfo computes the encoded snapshot of sc, consulting the
// cache unless opts.Refresh is set.
func (r *Runner) SnapshotWithCacheInfo(ctx context.Context, sc *scene.Scene, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	sceneHash := cache.Hash(sc.Canonical())
	cacheKey := r.Keyer.SnapshotKey(sceneHash, opts.SnapshotKeyOpts(Bounds(sc, opts)))

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, cacheKey, "snapshot"); ok {
			if _, err := snapshot.ParseJSON(data); err == nil {
				return data, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Layout, sc.ItemCount())
	start := time.Now()
	var data []byte
	snap, err := ComputeSnapshot(sc, opts)
	if err == nil {
		data, err = snapshot.RenderJSON(snap)
	}
	hooks.OnLayoutComplete(ctx, opts.Layout, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	r.store(ctx, cacheKey, "snapshot", data, cache.TTLSnapshot)
	return data, false, nil
}

// Snapshot computes the decoded snapshot of sc.
func (r *Runner) Snapshot(ctx context.Context, sc *scene.Scene, opts Options) (*snapshot.Snapshot, error) {
	data, _, err := r.SnapshotWithCacheInfo(ctx, sc, opts)
	if err != nil {
		return nil, err
	}
	return snapshot.ParseJSON(data)
}

// RenderWithCacheInfo renders an encoded snapshot in every requested
// format. The hit flag is true only when every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, data []byte, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	snapHash := cache.Hash(data)
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cached, ok := r.lookup(ctx, r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format)), "artifact")
			if !ok {
				break
			}
			artifacts[format] = cached
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	snap, err := snapshot.ParseJSON(data)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(snap, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, out := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(snapHash, opts.ArtifactKeyOpts(format)), "artifact", out, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
