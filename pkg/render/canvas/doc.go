// Package canvas draws an adapted tree on a fixed-range plot and emits SVG.
//
// The plot maps a data range (by default x 0..1080 and y 0..720) onto a
// pixel frame of the same size, with the y axis pointing up. Each node is a
// circle filled with its assigned color; each edge is a straight line with an
// arrowhead that stops at the target's rim.
//
//	svg, stats := canvas.RenderSVG(g, canvas.WithLabels())
//
// Edges whose target has no layout entry are skipped and counted in
// [Stats.Skipped]. Nodes outside the data range are drawn anyway and clipped
// by the frame.
package canvas
