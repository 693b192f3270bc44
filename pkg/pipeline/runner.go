package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/cache"
	"github.com/matzehuels/forcegraph/pkg/figure"
	"github.com/matzehuels/forcegraph/pkg/graph"
	"github.com/matzehuels/forcegraph/pkg/observability"
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

	// LayoutTTL and ArtifactTTL override cache.TTLLayout and cache.TTLArtifact.
	LayoutTTL   time.Duration
	ArtifactTTL time.Duration
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

// Execute runs the complete build → layout → render pipeline with caching.
// It never displays anything; opts.Render is ignored.
func (r *Runner) Execute(ctx context.Context, d graph.Data, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1+2: Build and layout
	layoutStart := time.Now()
	fig, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Figure = fig
	result.Layout = fig.Export()
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = fig.Graph().NodeCount() + len(fig.Unweighted())
	result.Stats.EdgeCount = fig.Graph().EdgeCount()
	result.Stats.Unweighted = len(fig.Unweighted())
	result.Stats.Dropped = len(d.Nodes) - len(graph.Filter(d).Nodes)
	result.CacheInfo.LayoutHit = layoutHit
	if data, err := graph.MarshalData(d); err == nil {
		result.DataHash = cache.Hash(data)
	}

	opts.Logger.Info("computed layout",
		"engine", opts.Engine,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, fig, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"backend", opts.Backend,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo builds and lays out d with caching and returns cache hit info.
// The cache holds the layout export, keyed by the data hash and layout options.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d graph.Data, opts Options) (*figure.Figure, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	dataBytes, err := graph.MarshalData(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize data for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(dataBytes), opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if l, err := graph.UnmarshalLayout(data); err == nil {
				if fig, err := FigureFromLayout(l, opts); err == nil {
					observability.Cache().OnCacheHit(ctx, "layout")
					return fig, true, nil
				}
			}
			// Undecodable entry, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("layout cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	fig, _, err := ComputeFigure(ctx, d, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalLayout(fig.Export()); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, ttlOr(r.LayoutTTL, cache.TTLLayout)); err != nil {
			opts.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return fig, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d graph.Data, opts Options) (*figure.Figure, error) {
	fig, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return fig, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts are keyed by the hash of the figure's layout export.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(fig.Export())
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	rendered, err := renderWithHooks(ctx, fig, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, ttlOr(r.ArtifactTTL, cache.TTLArtifact)); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, fig, opts)
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

func ttlOr(ttl, fallback time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return fallback
}
