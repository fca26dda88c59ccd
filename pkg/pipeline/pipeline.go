// Package pipeline provides the fetch → adapt → render pipeline for treeplot.
//
// This package implements the complete pipeline used by the render command,
// the viewer server and the terminal inspector. By centralizing this logic,
// every entry point draws the same picture for the same tree.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Ask a [tree.Source] for one complete snapshot
//  2. Adapt: Turn the tree into node order, edges, layout and colors
//  3. Render: Draw the graph on a surface and encode it in each format
//
// Each stage can be run independently or as part of the complete pipeline.
// Only raster conversions (pdf, png) are cached; fetch and adapt always run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    VizType: "canvas",
//	    Formats: []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, tree.SampleSource(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/cache"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/graph"
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/render/canvas"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Viewer
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = canvas.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = canvas.DefaultHeight

	// DefaultRadius is the default node radius in layout units.
	DefaultRadius = canvas.DefaultRadius

	// DefaultPalette names the default node palette.
	DefaultPalette = palette.DefaultName

	// DefaultOverflow is the default palette overflow policy.
	DefaultOverflow = "error"

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultVizType is the default rendering surface.
const DefaultVizType = graph.VizTypeCanvas

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// rasterFormats are produced by converting SVG and are cached.
var rasterFormats = map[string]bool{
	FormatPNG: true,
	FormatPDF: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run. The TOML tags
// let the CLI load defaults from its config file.
type Options struct {
	// Adapt options
	Palette       string `json:"palette,omitempty" toml:"palette"`
	Overflow      string `json:"overflow,omitempty" toml:"overflow"`
	FallbackColor string `json:"fallback_color,omitempty" toml:"fallback_color"`

	// Render options
	VizType string   `json:"viz_type,omitempty" toml:"viz_type"`
	Formats []string `json:"formats,omitempty" toml:"formats"`
	Width   int      `json:"width,omitempty" toml:"width"`
	Height  int      `json:"height,omitempty" toml:"height"`
	Radius  float64  `json:"radius,omitempty" toml:"radius"`
	Labels  bool     `json:"labels,omitempty" toml:"labels"`
	Grid    bool     `json:"grid,omitempty" toml:"grid"`
	Fit     bool     `json:"fit,omitempty" toml:"fit"`
	Title   string   `json:"title,omitempty" toml:"title"`
	Scale   float64  `json:"scale,omitempty" toml:"scale"`

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger            `json:"-" toml:"-"`
	Layout adapter.LayoutProvider `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the fetched snapshot.
	Tree *tree.Tree

	// Graph is the adapter output.
	Graph adapter.Graph

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	// Skipped counts edges the surface did not draw.
	Skipped    int
	FetchTime  time.Duration
	AdaptTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether every raster artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return perrors.New(perrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a rendering surface is valid.
func ValidateVizType(vizType string) error {
	return graph.ValidateVizType(vizType)
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates every field.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetAdaptDefaults()
	o.SetRenderDefaults()
	if _, err := o.Adapter(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetAdaptDefaults sets default values for adaptation.
func (o *Options) SetAdaptDefaults() {
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Overflow == "" {
		o.Overflow = DefaultOverflow
	}
	if o.FallbackColor == "" {
		o.FallbackColor = adapter.DefaultFallbackColor
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Adapter builds the adapter described by the adapt options.
func (o *Options) Adapter() (*adapter.Adapter, error) {
	o.SetAdaptDefaults()
	p, err := palette.Resolve(o.Palette)
	if err != nil {
		return nil, err
	}
	policy, err := adapter.ParseOverflowPolicy(o.Overflow)
	if err != nil {
		return nil, err
	}
	fallback, err := palette.Parse(o.FallbackColor)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPalette, err, "fallback color")
	}
	if len(fallback) != 1 {
		return nil, perrors.New(perrors.ErrCodeInvalidPalette, "fallback color must be a single color, got %d", len(fallback))
	}
	return adapter.New(
		adapter.WithPalette(p),
		adapter.WithOverflow(policy),
		adapter.WithFallbackColor(fallback[0]),
		adapter.WithLayout(o.Layout),
	), nil
}

// IsNodelink returns true if this is a Graphviz rendering.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// NeedsSVG reports whether any requested format is derived from SVG.
func (o *Options) NeedsSVG() bool {
	for _, f := range o.Formats {
		if f == FormatSVG || rasterFormats[f] {
			return true
		}
	}
	return false
}

// ArtifactKeyOpts returns cache key options for a raster format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// String summarizes the options for logs.
func (o *Options) String() string {
	return fmt.Sprintf("viz=%s formats=%v palette=%s overflow=%s size=%dx%d",
		o.VizType, o.Formats, o.Palette, o.Overflow, o.Width, o.Height)
}
