// Package nodelink renders adapted trees as Graphviz node-link diagrams.
//
// # Overview
//
// Nodes are pinned to their layout coordinates and drawn as filled circles;
// edges are drawn by Graphviz. Rendering uses the neato engine, which honors
// pinned positions instead of computing its own layout.
//
// # Usage
//
// Convert the graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dangling Edges
//
// An edge whose target has no layout entry still appears in the diagram: the
// target becomes a small unpinned point node and Graphviz places it.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
