// Package tree defines the node mapping that treeplot draws.
//
// Despite the name, a [Tree] is a general directed graph: every node is keyed
// by a unique identifier and carries an ordered list of outgoing links and a
// fixed 2D position. Cycles, self-links and multi-parent links are all legal,
// and links may name identifiers that are not keys of the tree.
//
// # Ordering
//
// A Tree remembers insertion order. [Tree.IDs] and [Tree.All] iterate in that
// order, which is the node order the adapter hands to renderers:
//
//	t := tree.New()
//	_ = t.Add("1", tree.Node{Links: []tree.ID{"2"}, Pos: tree.Position{X: 130, Y: 25}})
//	_ = t.Add("2", tree.Node{Pos: tree.Position{X: 150, Y: 100}})
//	t.IDs() // [1 2]
//
// # Sources
//
// A [Source] supplies a snapshot of a Tree at call time. [SampleSource]
// returns the built-in sample; file, Redis and MongoDB implementations live
// under pkg/source. Fetching a snapshot is the only blocking step before the
// adapter runs, and either the full Tree is returned or an error is.
package tree
