package graph

import (
	"fmt"
	"slices"

	"github.com/matzehuels/treeplot/pkg/adapter"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Rendering surfaces.
const (
	VizTypeCanvas   = "canvas"
	VizTypeNodelink = "nodelink"
)

// VizTypes lists the rendering surfaces in preference order.
var VizTypes = []string{VizTypeCanvas, VizTypeNodelink}

// ValidateVizType returns an INVALID_VIZ_TYPE error for unknown surfaces.
func ValidateVizType(v string) error {
	if slices.Contains(VizTypes, v) {
		return nil
	}
	return perrors.New(perrors.ErrCodeInvalidVizType, "unknown visualization type %q (use %s or %s)", v, VizTypeCanvas, VizTypeNodelink)
}

// =============================================================================
// Plot - Wire Format
// =============================================================================

// Plot is the serialized form of an adapted tree.
type Plot struct {
	Nodes  NodeData         `json:"node_renderer"`
	Edges  EdgeData         `json:"edge_renderer"`
	Layout map[string]Point `json:"graph_layout"`
}

// NodeData is the node column table.
type NodeData struct {
	Index     []string `json:"index"`
	FillColor []string `json:"fill_color"`
}

// EdgeData is the edge column table.
type EdgeData struct {
	Start []string `json:"start"`
	End   []string `json:"end"`
}

// Point is an [x, y] pair.
type Point [2]float64

// =============================================================================
// adapter.Graph ↔ Plot Conversion
// =============================================================================

// FromAdapter converts adapter output into its wire form. Columns follow
// node order; slices are never nil so empty graphs encode as [].
func FromAdapter(g adapter.Graph) Plot {
	p := Plot{
		Nodes: NodeData{
			Index:     make([]string, len(g.NodeOrder)),
			FillColor: make([]string, len(g.NodeOrder)),
		},
		Edges: EdgeData{
			Start: toStrings(g.Start),
			End:   toStrings(g.End),
		},
		Layout: make(map[string]Point, len(g.Layout)),
	}
	for i, id := range g.NodeOrder {
		p.Nodes.Index[i] = string(id)
		p.Nodes.FillColor[i] = g.FillColor[id]
	}
	for id, pos := range g.Layout {
		p.Layout[string(id)] = Point{pos.X, pos.Y}
	}
	return p
}

// ToAdapter converts the wire form back. It rejects tables whose columns
// differ in length.
func (p Plot) ToAdapter() (adapter.Graph, error) {
	if len(p.Nodes.Index) != len(p.Nodes.FillColor) {
		return adapter.Graph{}, perrors.New(perrors.ErrCodeInvalidInput,
			"node table: %d ids, %d colors", len(p.Nodes.Index), len(p.Nodes.FillColor))
	}
	if len(p.Edges.Start) != len(p.Edges.End) {
		return adapter.Graph{}, perrors.New(perrors.ErrCodeInvalidInput,
			"edge table: %d starts, %d ends", len(p.Edges.Start), len(p.Edges.End))
	}

	g := adapter.Graph{
		NodeOrder: toIDs(p.Nodes.Index),
		FillColor: make(map[tree.ID]string, len(p.Nodes.Index)),
		Start:     toIDs(p.Edges.Start),
		End:       toIDs(p.Edges.End),
		Layout:    make(map[tree.ID]tree.Position, len(p.Layout)),
	}
	seen := make(map[tree.ID]bool, len(g.NodeOrder))
	for i, id := range g.NodeOrder {
		if seen[id] {
			return adapter.Graph{}, fmt.Errorf("node table: duplicate id %s", id)
		}
		seen[id] = true
		g.FillColor[id] = p.Nodes.FillColor[i]
	}
	for id, pt := range p.Layout {
		g.Layout[tree.ID(id)] = tree.Position{X: pt[0], Y: pt[1]}
	}
	return g, nil
}

func toStrings(ids []tree.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toIDs(ss []string) []tree.ID {
	out := make([]tree.ID, len(ss))
	for i, s := range ss {
		out[i] = tree.ID(s)
	}
	return out
}
