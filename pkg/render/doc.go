// Package render provides the rendering surfaces for adapted trees.
//
// # Overview
//
// Surfaces take an [adapter.Graph] and turn it into a picture:
//
//   - [canvas]: a fixed-range plot drawn directly as SVG (circles and arrows)
//   - [nodelink]: a Graphviz diagram with pinned node positions
//
// Both surfaces produce SVG. Whether a dangling edge (one whose target is
// not a node) is drawn is decided by each surface and documented there.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, stats := canvas.RenderSVG(g)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [canvas]: github.com/matzehuels/treeplot/pkg/render/canvas
// [nodelink]: github.com/matzehuels/treeplot/pkg/render/nodelink
package render
