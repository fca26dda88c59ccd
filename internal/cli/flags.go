package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/pipeline"
)

// sourceFlags selects the tree source.
type sourceFlags struct {
	source string // sample, file:PATH, redis:KEY, mongo:COLLECTION or a bare .json/.toml path
	format string // file format override: json or toml
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.source, "source", "s", "", "tree source: sample (default), file:PATH, redis:KEY, mongo:COLLECTION")
	cmd.Flags().StringVar(&f.format, "input-format", "", "file source format: json, toml (default: by extension)")
}

// spec returns the source spec, falling back to the config file.
func (f *sourceFlags) spec(cfg Config) string {
	if f.source != "" {
		return f.source
	}
	return cfg.Source
}

// plotFlags holds adapter and surface flags. Only flags set on the command
// line override the config file.
type plotFlags struct {
	palette  string
	overflow string
	fallback string
	vizType  string
	width    int
	height   int
	radius   float64
	labels   bool
	grid     bool
	fit      bool
	title    string
}

func (f *plotFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.palette, "palette", "", "palette name ("+strings.Join(palette.Names(), ", ")+") or comma-separated #hex colors")
	fl.StringVar(&f.overflow, "overflow", "", "when nodes outnumber colors: error (default), cycle, fallback")
	fl.StringVar(&f.fallback, "fallback-color", "", "color for nodes past the palette end with --overflow=fallback")
	fl.StringVarP(&f.vizType, "type", "t", "", "rendering surface: canvas (default), nodelink")
	fl.IntVar(&f.width, "width", pipeline.DefaultWidth, "plot width")
	fl.IntVar(&f.height, "height", pipeline.DefaultHeight, "plot height")
	fl.Float64Var(&f.radius, "radius", pipeline.DefaultRadius, "node radius")
	fl.BoolVar(&f.labels, "labels", false, "draw node identifiers")
	fl.BoolVar(&f.grid, "grid", false, "draw a background grid (canvas)")
	fl.BoolVar(&f.fit, "fit", false, "fit the plot range to the node positions (canvas)")
	fl.StringVar(&f.title, "title", "", "plot title")
}

// options merges the flags that were set over the config file defaults.
func (f *plotFlags) options(cmd *cobra.Command, cfg Config) pipeline.Options {
	opts := cfg.Plot
	opts.Formats = append([]string(nil), cfg.Plot.Formats...)
	set := cmd.Flags().Changed

	if set("palette") {
		opts.Palette = f.palette
	}
	if set("overflow") {
		opts.Overflow = f.overflow
	}
	if set("fallback-color") {
		opts.FallbackColor = f.fallback
	}
	if set("type") {
		opts.VizType = f.vizType
	}
	if set("width") {
		opts.Width = f.width
	}
	if set("height") {
		opts.Height = f.height
	}
	if set("radius") {
		opts.Radius = f.radius
	}
	if set("labels") {
		opts.Labels = f.labels
	}
	if set("grid") {
		opts.Grid = f.grid
	}
	if set("fit") {
		opts.Fit = f.fit
	}
	if set("title") {
		opts.Title = f.title
	}
	return opts
}
