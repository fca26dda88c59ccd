package tree

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
)

var (
	// ErrInvalidNodeID is returned by [Tree.Add] when the identifier is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.Add] when the identifier is
	// already a key of the tree.
	ErrDuplicateNodeID = errors.New("duplicate node ID")
)

// ID identifies a node. Integer identifiers from external sources are stored
// in their decimal form, so 1 and "1" name the same node.
type ID string

// IntID returns the identifier for an integer key.
func IntID(n int) ID { return ID(strconv.Itoa(n)) }

// String returns the identifier as a plain string.
func (id ID) String() string { return string(id) }

// Position is a fixed 2D coordinate. Y grows upwards, as on a plot.
type Position struct {
	X float64
	Y float64
}

// Node is the record stored under an identifier.
type Node struct {
	// Links are the outgoing edges in their declared order. Targets are not
	// required to exist in the tree.
	Links []ID
	// Pos is the node's fixed placement.
	Pos Position
}

// Tree is an insertion-ordered mapping from identifier to [Node].
//
// The zero value is not usable; create trees with [New]. A Tree is not safe
// for concurrent mutation, but any number of goroutines may read an unmutated
// Tree.
type Tree struct {
	order []ID
	nodes map[ID]Node
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{nodes: make(map[ID]Node)}
}

// Add appends a node under id. The link slice is copied so later changes by
// the caller do not leak into the tree.
func (t *Tree) Add(id ID, n Node) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, ok := t.nodes[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, id)
	}
	n.Links = slices.Clone(n.Links)
	t.order = append(t.order, id)
	t.nodes[id] = n
	return nil
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.order) }

// LinkCount returns the total number of links across all nodes.
func (t *Tree) LinkCount() int {
	total := 0
	for _, id := range t.order {
		total += len(t.nodes[id].Links)
	}
	return total
}

// IDs returns the identifiers in insertion order. The slice is a copy.
func (t *Tree) IDs() []ID {
	return slices.Clone(t.order)
}

// Node returns the record stored under id.
func (t *Tree) Node(id ID) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Has reports whether id is a key of the tree.
func (t *Tree) Has(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// All iterates over the nodes in insertion order.
func (t *Tree) All() iter.Seq2[ID, Node] {
	return func(yield func(ID, Node) bool) {
		for _, id := range t.order {
			if !yield(id, t.nodes[id]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		order: slices.Clone(t.order),
		nodes: make(map[ID]Node, len(t.nodes)),
	}
	for id, n := range t.nodes {
		n.Links = slices.Clone(n.Links)
		c.nodes[id] = n
	}
	return c
}
