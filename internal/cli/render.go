package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeplot/pkg/pipeline"
)

// defaultBase is the output base name when neither -o nor a file source
// names one.
const defaultBase = "treeplot"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	src     sourceFlags
	plot    plotFlags
	formats string // comma-separated output formats
	output  string // output file (single format) or base path
	scale   float64
	noCache bool
	refresh bool
}

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tree to SVG, JSON, DOT, PDF or PNG",
		Long: `Render fetches a tree, adapts it into node order, edges, layout and colors,
and draws it on the selected surface.

Formats:
  svg   the plot as SVG
  json  the graph data (node_renderer, edge_renderer, graph_layout)
  dot   Graphviz DOT with pinned positions
  pdf   SVG converted with rsvg-convert
  png   SVG converted with rsvg-convert (--scale)`,
		Example: `  treeplot render
  treeplot render -s tree.toml -f svg,png -o out/plot
  treeplot render -s redis:trees:demo -t nodelink --palette Category10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, &opts)
		},
	}

	opts.src.register(cmd)
	opts.plot.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), json, dot, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the raster artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached rasters and rebuild them")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, opts *renderOpts) error {
	ctx := cmd.Context()

	popts := opts.plot.options(cmd, c.config)
	if opts.formats != "" {
		popts.Formats = pipeline.ParseFormats(opts.formats)
	}
	if cmd.Flags().Changed("scale") {
		popts.Scale = opts.scale
	}
	popts.Refresh = opts.refresh
	popts.Logger = c.Logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spec := opts.src.spec(c.config)
	src, err := c.openSource(ctx, spec, opts.src.format)
	if err != nil {
		return err
	}
	defer src.Close()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	done := timed(c.Logger, "rendered", "source", spec, "viz", popts.VizType)
	result, err := runner.Execute(ctx, src, popts)
	if err != nil {
		return err
	}
	done()

	paths, err := writeArtifacts(ctx, result.Artifacts, popts.Formats, opts.output, spec)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s plot", popts.VizType)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	if result.Stats.Skipped > 0 {
		printWarning("%d edges point at unknown nodes and were not drawn", result.Stats.Skipped)
	}
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in
// format order.
func writeArtifacts(ctx context.Context, artifacts map[string][]byte, formats []string, output, spec string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := outputPath(output, spec, format, len(formats) > 1)
		if err := writeFile(path, artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for format. A single format writes to output
// as given; multiple formats share its base name.
func outputPath(output, spec, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	return basePath(output, spec) + "." + format
}

// basePath derives the base output path. Without -o it uses the file
// source's name, or "treeplot" for other sources. Known format extensions
// are stripped from output.
func basePath(output, spec string) string {
	if output == "" {
		path, isFile := strings.CutPrefix(spec, "file:")
		if !isFile && (strings.Contains(spec, ":") || filepath.Ext(spec) == "") {
			return defaultBase
		}
		return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile creates parent directories and writes data to path.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
