package canvas

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Defaults match a 1080x720 figure with 10-unit circles.
const (
	DefaultWidth  = 1080
	DefaultHeight = 720
	DefaultRadius = 10
)

const (
	edgeColor = "#666666"
	axisColor = "#cccccc"
	arrowSize = 7
	labelSize = 11
)

// Stats summarizes one render.
type Stats struct {
	Nodes   int
	Edges   int
	Skipped int
}

// Range is a closed data interval on one axis.
type Range struct {
	Min, Max float64
}

func (r Range) span() float64 {
	if s := r.Max - r.Min; s != 0 {
		return s
	}
	return 1
}

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	xRange        Range
	yRange        Range
	rangeSet      bool
	radius        float64
	labels        bool
	title         string
	grid          bool
}

// WithSize sets the frame size in pixels. Unless [WithRange] is given, the
// data range follows the frame size.
func WithSize(w, h int) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = float64(w)
		}
		if h > 0 {
			r.height = float64(h)
		}
	}
}

// WithRange sets the visible data range.
func WithRange(x, y Range) SVGOption {
	return func(r *svgRenderer) { r.xRange, r.yRange, r.rangeSet = x, y, true }
}

// WithFitRange fits the data range to the layout bounds with a margin.
func WithFitRange(l map[tree.ID]tree.Position, margin float64) SVGOption {
	return func(r *svgRenderer) {
		if len(l) == 0 {
			return
		}
		b := adapter.LayoutBounds(l)
		r.xRange = Range{b.MinX - margin, b.MaxX + margin}
		r.yRange = Range{b.MinY - margin, b.MaxY + margin}
		r.rangeSet = true
	}
}

// WithRadius sets the circle radius in data units.
func WithRadius(rad float64) SVGOption {
	return func(r *svgRenderer) {
		if rad > 0 {
			r.radius = rad
		}
	}
}

// WithLabels draws node identifiers inside the circles.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle adds a title element and a caption.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// WithGrid draws light axis lines every 100 data units.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:  DefaultWidth,
		height: DefaultHeight,
		radius: DefaultRadius,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.rangeSet {
		r.xRange = Range{0, r.width}
		r.yRange = Range{0, r.height}
	}
	return r
}

// project maps a data point to frame pixels, flipping y.
func (r *svgRenderer) project(p tree.Position) (float64, float64) {
	x := (p.X - r.xRange.Min) / r.xRange.span() * r.width
	y := r.height - (p.Y-r.yRange.Min)/r.yRange.span()*r.height
	return x, y
}

// pixelRadius converts the data radius along the x axis.
func (r *svgRenderer) pixelRadius() float64 {
	return r.radius / r.xRange.span() * r.width
}

// RenderSVG draws g and returns the SVG document with render statistics.
// Nodes are drawn in node order, so later nodes sit on top.
func RenderSVG(g adapter.Graph, opts ...SVGOption) ([]byte, Stats) {
	r := newSVGRenderer(opts...)
	var stats Stats

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="frame" x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", r.width, r.height)
	if r.grid {
		renderGrid(&buf, &r)
	}

	buf.WriteString(`  <g class="edges">` + "\n")
	for i := range g.Start {
		from, okFrom := g.Layout[g.Start[i]]
		to, okTo := g.Layout[g.End[i]]
		if !okFrom || !okTo {
			stats.Skipped++
			continue
		}
		renderEdge(&buf, &r, from, to, g.Start[i] == g.End[i])
		stats.Edges++
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, id := range g.NodeOrder {
		p, ok := g.Layout[id]
		if !ok {
			continue
		}
		renderNode(&buf, &r, id, p, g.FillColor[id])
		stats.Nodes++
	}
	buf.WriteString("  </g>\n")

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="8" y="18" font-family="sans-serif" font-size="14" fill="#333">%s</text>`+"\n",
			html.EscapeString(r.title))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes(), stats
}

func renderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="%d" markerHeight="%d" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="%s"/>
    </marker>
  </defs>
`, arrowSize, arrowSize, edgeColor)
}

func renderGrid(buf *bytes.Buffer, r *svgRenderer) {
	buf.WriteString(`  <g class="grid">` + "\n")
	for x := math.Ceil(r.xRange.Min/100) * 100; x <= r.xRange.Max; x += 100 {
		px, _ := r.project(tree.Position{X: x, Y: r.yRange.Min})
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n", px, px, r.height, axisColor)
	}
	for y := math.Ceil(r.yRange.Min/100) * 100; y <= r.yRange.Max; y += 100 {
		_, py := r.project(tree.Position{X: r.xRange.Min, Y: y})
		fmt.Fprintf(buf, `    <line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n", py, r.width, py, axisColor)
	}
	buf.WriteString("  </g>\n")
}

func renderEdge(buf *bytes.Buffer, r *svgRenderer, from, to tree.Position, self bool) {
	x1, y1 := r.project(from)
	x2, y2 := r.project(to)
	rad := r.pixelRadius()

	if self {
		// Loop above the node, entering from the right.
		fmt.Fprintf(buf, `    <path class="edge loop" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" fill="none" stroke="%s" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
			x1-rad*0.7, y1-rad*0.7,
			x1-rad*2.5, y1-rad*3.5,
			x1+rad*2.5, y1-rad*3.5,
			x1+rad*0.7, y1-rad*0.7,
			edgeColor)
		return
	}

	dx, dy := x2-x1, y2-y1
	dist := math.Hypot(dx, dy)
	if dist > 2*rad {
		ux, uy := dx/dist, dy/dist
		x1, y1 = x1+ux*rad, y1+uy*rad
		x2, y2 = x2-ux*rad, y2-uy*rad
	}
	fmt.Fprintf(buf, `    <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5" marker-end="url(#arrow)"/>`+"\n",
		x1, y1, x2, y2, edgeColor)
}

func renderNode(buf *bytes.Buffer, r *svgRenderer, id tree.ID, p tree.Position, fill string) {
	if fill == "" {
		fill = "#ffffff"
	}
	cx, cy := r.project(p)
	fmt.Fprintf(buf, `    <circle class="node" id="node-%s" cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1"><title>%s (%g, %g)</title></circle>`+"\n",
		html.EscapeString(string(id)), cx, cy, r.pixelRadius(), fill, palette.Stroke(fill),
		html.EscapeString(string(id)), p.X, p.Y)
	if r.labels {
		fmt.Fprintf(buf, `    <text class="label" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%d" fill="%s">%s</text>`+"\n",
			cx, cy, labelSize, palette.LabelColor(fill), html.EscapeString(string(id)))
	}
}
