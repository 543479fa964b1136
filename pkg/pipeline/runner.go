package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/observability"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
	"github.com/matzehuels/siteoverview/pkg/sites/source"
)

// Cache key types reported to observability hooks.
const (
	keyTypeOverview = "overview"
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
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

// Execute runs load → layout → render. An infeasible layout renders the
// empty panel and is reported in Result.Infeasible.
func (r *Runner) Execute(ctx context.Context, src source.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	ov, loadHit, err := r.LoadWithCacheInfo(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.LoadHit = loadHit
	result.Overview = ov
	result.OverviewHash = sites.Hash(ov)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Sites = len(ov.Sites)
	result.Stats.Items = ov.Items()

	r.Logger.Debug("loaded overview",
		"source", src.Name(),
		"sites", len(ov.Sites),
		"mode", ov.Mode(),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	g, layoutHit, err := r.LayoutWithCacheInfo(ctx, ov.Items(), opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	switch {
	case err == nil:
		result.Geometry = &g
		r.Logger.Debug("computed layout",
			"columns", g.Columns,
			"rows", g.Rows,
			"radius", g.HexagonRadius,
			"duration", result.Stats.LayoutTime)
	case IsInfeasible(err):
		result.Infeasible = err
		r.Logger.Warn("sites do not fit the panel, rendering empty", "sites", ov.Items(), "size", opts.Describe())
	default:
		return nil, fmt.Errorf("layout: %w", err)
	}

	// Stage 3: Render
	result.Scene = BuildScene(ov, result.Geometry, opts)
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result.Scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads the overview of src, reusing a copy cached under
// the source name for [cache.TTLOverview]. Load errors without a code are
// reported as SOURCE_UNAVAILABLE.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, src source.Source, opts Options) (sites.Overview, bool, error) {
	cacheKey := r.Keyer.OverviewKey(src.Name())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if ov, err := sites.Read(bytes.NewReader(data), sites.FormatJSON); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeOverview)
				return ov, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeOverview)
	}

	ov, err := src.Load(ctx)
	if err != nil {
		if errors.GetCode(err) == "" {
			return sites.Overview{}, false, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "load %s", src.Name())
		}
		return sites.Overview{}, false, fmt.Errorf("load %s: %w", src.Name(), err)
	}

	var buf bytes.Buffer
	if err := sites.Write(&buf, ov); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLOverview); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeOverview, buf.Len())
		}
	}
	return ov, false, nil
}

// LayoutWithCacheInfo computes the geometry for items sites with caching and
// returns cache hit info. Infeasible results are not cached.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, items int, opts Options) (layout.Geometry, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Geometry{}, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(opts.LayoutKeyOpts(items))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Geometry
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			r.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
	}

	start := time.Now()
	observability.Layout().OnLayoutStart(ctx, opts.Width, opts.Height, items)
	g, err := ComputeLayout(items, opts)
	observability.Layout().OnLayoutComplete(ctx, g.Columns, g.Rows, time.Since(start), err)
	if err != nil {
		return layout.Geometry{}, false, err
	}

	if data, err := json.Marshal(g); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}

	return g, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, items int, opts Options) (layout.Geometry, error) {
	g, _, err := r.LayoutWithCacheInfo(ctx, items, opts)
	return g, err
}

// RenderWithCacheInfo renders the scene in every requested format with
// caching and returns cache hit info. Artifacts are keyed by the scene
// content, which covers the overview data and its geometry.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s hexgrid.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sceneData, err := json.Marshal(s)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize scene for cache key")
	}
	sceneHash := cache.Hash(sceneData)

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, opts.Formats)
	rendered, err := RenderScene(ctx, s, opts)
	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s hexgrid.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
