package adapter

import (
	"github.com/matzehuels/treeplot/pkg/palette"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Graph holds the four artifacts for one tree snapshot.
type Graph struct {
	// NodeOrder lists every key of the tree exactly once.
	NodeOrder []tree.ID
	// FillColor maps each node to its palette color.
	FillColor map[tree.ID]string
	// Start and End are parallel: edge i runs from Start[i] to End[i].
	Start []tree.ID
	End   []tree.ID
	// Layout maps each node to its fixed coordinate.
	Layout map[tree.ID]tree.Position
}

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Start) }

// Dangling returns the indices of edges whose target is not in NodeOrder.
func (g Graph) Dangling() []int {
	var out []int
	for i, e := range g.End {
		if _, ok := g.Layout[e]; !ok {
			out = append(out, i)
		}
	}
	return out
}

// Adapter builds [Graph] values. It is immutable after [New] and safe for
// concurrent use.
type Adapter struct {
	layout   LayoutProvider
	palette  palette.Palette
	overflow OverflowPolicy
	fallback string
}

// Option configures an [Adapter].
type Option func(*Adapter)

// WithLayout sets the layout strategy. Nil keeps [StaticLayout].
func WithLayout(l LayoutProvider) Option {
	return func(a *Adapter) {
		if l != nil {
			a.layout = l
		}
	}
}

// WithPalette sets the node palette.
func WithPalette(p palette.Palette) Option {
	return func(a *Adapter) { a.palette = p }
}

// WithOverflow sets the policy applied when nodes outnumber palette colors.
func WithOverflow(p OverflowPolicy) Option {
	return func(a *Adapter) { a.overflow = p }
}

// WithFallbackColor sets the color used by [OverflowFallback].
func WithFallbackColor(c string) Option {
	return func(a *Adapter) {
		if c != "" {
			a.fallback = c
		}
	}
}

// New creates an adapter. Without options it uses [StaticLayout],
// [palette.Spectral8] and [OverflowError].
func New(opts ...Option) *Adapter {
	a := &Adapter{
		layout:   StaticLayout{},
		palette:  palette.Spectral8,
		overflow: OverflowError,
		fallback: DefaultFallbackColor,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Palette returns the configured palette.
func (a *Adapter) Palette() palette.Palette { return a.palette }

// Overflow returns the configured overflow policy.
func (a *Adapter) Overflow() OverflowPolicy { return a.overflow }

// Layout computes coordinates for order with the configured strategy.
func (a *Adapter) Layout(t *tree.Tree, order []tree.ID) map[tree.ID]tree.Position {
	return a.layout.Layout(t, order)
}

// Build computes all artifacts for t. A nil tree is treated as empty.
//
// The only failure is palette exhaustion under [OverflowError]; no partial
// Graph is returned in that case.
func (a *Adapter) Build(t *tree.Tree) (Graph, error) {
	if t == nil {
		t = tree.New()
	}
	order := NodeOrder(t)
	colors, err := Colors(order, a.palette, a.overflow, a.fallback)
	if err != nil {
		return Graph{}, err
	}
	start, end := Edges(t, order)
	return Graph{
		NodeOrder: order,
		FillColor: colors,
		Start:     start,
		End:       end,
		Layout:    a.Layout(t, order),
	}, nil
}

// NodeOrder returns the keys of t in insertion order.
func NodeOrder(t *tree.Tree) []tree.ID {
	return t.IDs()
}
