package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/cache"
	"github.com/matzehuels/treeplot/pkg/observability"
	"github.com/matzehuels/treeplot/pkg/source"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Runner encapsulates pipeline execution with artifact caching.
// The CLI and the viewer server both use it.
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

// Execute runs the complete fetch → adapt → render pipeline.
func (r *Runner) Execute(ctx context.Context, src tree.Source, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	t, err := r.Fetch(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Tree = t
	result.Stats.FetchTime = time.Since(fetchStart)

	r.Logger.Info("fetched tree",
		"source", source.Describe(src),
		"nodes", t.Len(),
		"links", t.LinkCount(),
		"duration", result.Stats.FetchTime)

	// Stage 2: Adapt
	adaptStart := time.Now()
	g, err := r.Adapt(ctx, t, opts)
	if err != nil {
		return nil, fmt.Errorf("adapt: %w", err)
	}
	result.Graph = g
	result.Stats.AdaptTime = time.Since(adaptStart)
	result.Stats.NodeCount = len(g.NodeOrder)
	result.Stats.EdgeCount = g.EdgeCount()

	if dangling := len(g.Dangling()); dangling > 0 {
		r.Logger.Warn("edges point at unknown nodes", "count", dangling)
	}

	// Stage 3: Render
	renderStart := time.Now()
	out, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = out.Artifacts
	result.Stats.Skipped = out.Skipped
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = out.CacheHit

	r.Logger.Info("rendered outputs",
		"viz", opts.VizType,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch asks src for one snapshot. The source is called exactly once and
// its error is returned unchanged.
func (r *Runner) Fetch(ctx context.Context, src tree.Source) (*tree.Tree, error) {
	name := source.Describe(src)
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, name)

	start := time.Now()
	t, err := src.Tree(ctx)
	if err == nil && t == nil {
		t = tree.New()
	}
	count := 0
	if t != nil {
		count = t.Len()
	}
	hooks.OnFetchComplete(ctx, name, count, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Adapt converts t into graph data with the adapter described by opts.
func (r *Runner) Adapt(ctx context.Context, t *tree.Tree, opts Options) (adapter.Graph, error) {
	a, err := opts.Adapter()
	if err != nil {
		return adapter.Graph{}, err
	}
	if t == nil {
		t = tree.New()
	}

	start := time.Now()
	g, err := a.Build(t)
	observability.Pipeline().OnAdaptComplete(ctx, t.Len(), len(g.Start), time.Since(start), err)
	if err != nil {
		return adapter.Graph{}, err
	}
	r.Logger.Debug("adapted tree",
		"nodes", len(g.NodeOrder),
		"edges", g.EdgeCount(),
		"palette", opts.Palette,
		"overflow", opts.Overflow)
	return g, nil
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
