package adapter

import (
	"math"

	"github.com/matzehuels/treeplot/pkg/tree"
)

// LayoutProvider assigns a coordinate to every node in order.
type LayoutProvider interface {
	Layout(t *tree.Tree, order []tree.ID) map[tree.ID]tree.Position
}

// LayoutFunc adapts a function to [LayoutProvider].
type LayoutFunc func(t *tree.Tree, order []tree.ID) map[tree.ID]tree.Position

// Layout calls f(t, order).
func (f LayoutFunc) Layout(t *tree.Tree, order []tree.ID) map[tree.ID]tree.Position {
	return f(t, order)
}

// StaticLayout uses the positions stored on the nodes.
type StaticLayout struct{}

// Layout returns {id: t[id].Pos} for every id in order that is a key of t.
func (StaticLayout) Layout(t *tree.Tree, order []tree.ID) map[tree.ID]tree.Position {
	out := make(map[tree.ID]tree.Position, len(order))
	for _, id := range order {
		if n, ok := t.Node(id); ok {
			out[id] = n.Pos
		}
	}
	return out
}

// Bounds is the axis-aligned box around a layout.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// LayoutBounds returns the bounding box of the given positions. An empty
// layout yields the zero box.
func LayoutBounds(layout map[tree.ID]tree.Position) Bounds {
	if len(layout) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range layout {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}
