package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// pointsPerUnit scales layout units to Graphviz points.
const pointsPerUnit = 1.0

// Options configures node-link diagram rendering.
type Options struct {
	// Radius is the circle radius in layout units. Zero means 10.
	Radius float64
	// Labels draws identifiers inside the circles.
	Labels bool
}

// ToDOT converts adapter output to Graphviz DOT with pinned positions.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g adapter.Graph, opts Options) string {
	radius := opts.Radius
	if radius <= 0 {
		radius = 10
	}
	diameterIn := 2 * radius * pointsPerUnit / 72

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, width=%s, fontsize=9, fontname=\"Helvetica\"];\n", ftoa(diameterIn))
	buf.WriteString("  edge [color=\"#666666\", arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, id := range g.NodeOrder {
		p, ok := g.Layout[id]
		if !ok {
			continue
		}
		fill := g.FillColor[id]
		if fill == "" {
			fill = "#ffffff"
		}
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", ftoa(p.X*pointsPerUnit), ftoa(p.Y*pointsPerUnit)),
			fmt.Sprintf("fillcolor=%q", fill),
			fmt.Sprintf("color=%q", palette.Stroke(fill)),
			fmt.Sprintf("tooltip=%q", fmt.Sprintf("%s (%g, %g)", id, p.X, p.Y)),
		}
		if opts.Labels {
			attrs = append(attrs, fmt.Sprintf("label=%q", string(id)), fmt.Sprintf("fontcolor=%q", palette.LabelColor(fill)))
		} else {
			attrs = append(attrs, "label=\"\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", string(id), strings.Join(attrs, ", "))
	}

	declared := make(map[tree.ID]bool)
	for _, id := range g.End {
		if _, ok := g.Layout[id]; ok || declared[id] {
			continue
		}
		declared[id] = true
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.05, label=\"\", style=\"\"];\n", string(id))
	}

	buf.WriteString("\n")
	for i := range g.Start {
		fmt.Fprintf(&buf, "  %q -> %q;\n", string(g.Start[i]), string(g.End[i]))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Returns the SVG bytes ready for display or further conversion with
// render.ToPDF or render.ToPNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element so the SVG scales in
// a browser like the canvas output does.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
