// Package adapter converts a [tree.Tree] into the artifacts a node/edge
// rendering surface consumes.
//
// # Artifacts
//
// [Adapter.Build] produces four pieces of data, all keyed by node identifier:
//
//   - Node order: the tree's keys in insertion order
//   - Edges: two parallel sequences Start and End, one pair per declared link
//   - Layout: a fixed coordinate per node, taken from the tree
//   - Fill colors: the i-th palette color for the i-th node
//
// Each step is also available on its own ([NodeOrder], [Edges], [Adapter.Layout],
// [Colors]). They are pure functions of their inputs: nothing is cached and
// the tree is never mutated, so repeated calls return equal results.
//
// # What the adapter does not do
//
// Links pointing at identifiers that are not keys of the tree are passed
// through unchanged. Self-loops appear once, duplicates are kept, and no
// traversal or cycle detection is performed. Whether a dangling edge is drawn
// is for the surface to decide.
//
// # Layout strategies
//
// Coordinates come from a [LayoutProvider]. The default [StaticLayout] copies
// each node's stored position; other strategies can be injected with
// [WithLayout] without touching the rest of the pipeline.
//
// # Palette overflow
//
// When the tree has more nodes than the palette has colors, the
// [OverflowPolicy] decides: [OverflowError] (the default) fails with
// [ErrPaletteExhausted], [OverflowCycle] wraps around, and [OverflowFallback]
// fills the remainder with a single fallback color.
package adapter
