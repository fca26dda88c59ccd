package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/cache"
	"github.com/matzehuels/treeplot/pkg/graph"
	"github.com/matzehuels/treeplot/pkg/observability"
	"github.com/matzehuels/treeplot/pkg/render"
	"github.com/matzehuels/treeplot/pkg/render/canvas"
	"github.com/matzehuels/treeplot/pkg/render/nodelink"
)

// RenderOutput is the result of the render stage.
type RenderOutput struct {
	Artifacts map[string][]byte
	// Skipped counts edges the surface did not draw.
	Skipped int
	// CacheHit is true when every raster artifact came from the cache.
	CacheHit bool
}

// Render draws g on the configured surface and encodes every requested
// format.
func (r *Runner) Render(ctx context.Context, g adapter.Graph, opts Options) (*RenderOutput, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.VizType, opts.Formats)
	start := time.Now()
	out, err := r.render(ctx, g, opts)
	hooks.OnRenderComplete(ctx, opts.VizType, opts.Formats, time.Since(start), err)
	return out, err
}

func (r *Runner) render(ctx context.Context, g adapter.Graph, opts Options) (*RenderOutput, error) {
	out := &RenderOutput{Artifacts: make(map[string][]byte, len(opts.Formats))}

	var svg []byte
	if opts.NeedsSVG() {
		var err error
		svg, out.Skipped, err = RenderSVG(ctx, g, opts)
		if err != nil {
			return nil, err
		}
	}

	rasterCount, rasterHits := 0, 0
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			out.Artifacts[format] = svg
		case FormatJSON:
			data, err := graph.Marshal(g)
			if err != nil {
				return nil, err
			}
			out.Artifacts[format] = data
		case FormatDOT:
			out.Artifacts[format] = []byte(nodelink.ToDOT(g, nodelinkOptions(opts)))
		case FormatPDF, FormatPNG:
			rasterCount++
			data, hit, err := r.convert(ctx, svg, format, opts)
			if err != nil {
				return nil, err
			}
			if hit {
				rasterHits++
			}
			out.Artifacts[format] = data
		default:
			return nil, ValidateFormat(format)
		}
	}
	out.CacheHit = rasterCount > 0 && rasterHits == rasterCount
	return out, nil
}

// convert produces a raster artifact from svg, going through the cache.
func (r *Runner) convert(ctx context.Context, svg []byte, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(cache.Hash(svg), opts.ArtifactKeyOpts(format))
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, format)
			return data, true, nil
		} else if err != nil {
			r.Logger.Debug("cache read failed", "format", format, "err", err)
		}
		hooks.OnCacheMiss(ctx, format)
	}

	var data []byte
	var err error
	if format == FormatPDF {
		data, err = render.ToPDF(ctx, svg)
	} else {
		data, err = render.ToPNG(ctx, svg, opts.Scale)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Debug("cache write failed", "format", format, "err", err)
	} else {
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// RenderSVG draws g on the surface named by opts.VizType and returns the SVG
// with the number of edges left out.
func RenderSVG(ctx context.Context, g adapter.Graph, opts Options) ([]byte, int, error) {
	opts.SetRenderDefaults()
	if opts.IsNodelink() {
		svg, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(g, nodelinkOptions(opts)))
		return svg, 0, err
	}
	svg, stats := canvas.RenderSVG(g, canvasOptions(g, opts)...)
	return svg, stats.Skipped, nil
}

func canvasOptions(g adapter.Graph, opts Options) []canvas.SVGOption {
	out := []canvas.SVGOption{
		canvas.WithSize(opts.Width, opts.Height),
		canvas.WithRadius(opts.Radius),
	}
	if opts.Fit {
		out = append(out, canvas.WithFitRange(g.Layout, opts.Radius*3))
	}
	if opts.Labels {
		out = append(out, canvas.WithLabels())
	}
	if opts.Grid {
		out = append(out, canvas.WithGrid())
	}
	if opts.Title != "" {
		out = append(out, canvas.WithTitle(opts.Title))
	}
	return out
}

func nodelinkOptions(opts Options) nodelink.Options {
	return nodelink.Options{Radius: opts.Radius, Labels: opts.Labels}
}
