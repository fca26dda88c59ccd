// Package io provides JSON and TOML import and export for trees.
//
// # Overview
//
// This package reads and writes the node mapping that treeplot draws. The
// formats are designed for:
//
//   - Hand-written input files (TOML is the friendlier of the two)
//   - Snapshots stored in external backends (Redis stores the JSON form)
//   - Round-trip preservation: import, export and re-import produce the same
//     node order, links and positions
//
// # JSON Format
//
// The document holds a single ordered "nodes" array. Array order is the
// tree's node order:
//
//	{
//	  "nodes": [
//	    {"id": 1, "links": [2, 3, 4], "pos": [130, 25]},
//	    {"id": 2, "links": [3], "pos": [150, 100]},
//	    {"id": 3, "links": [], "pos": [250, 130]}
//	  ]
//	}
//
// # TOML Format
//
// The same records as an array of tables:
//
//	[[nodes]]
//	id = 1
//	links = [2, 3, 4]
//	pos = [130, 25]
//
// # Node Fields
//
// Required:
//   - id: string or integer identifier, unique within the document
//   - links: array of identifiers (may be empty, may name unknown nodes);
//     "link_to" is accepted as an alias
//   - pos: exactly two numbers, x then y
//
// Integer identifiers are normalized to their decimal string, so 1 and "1"
// refer to the same node. Exported documents always write string ids.
//
// # Errors
//
// Malformed records fail the whole read with an INVALID_TREE error from
// pkg/errors naming the offending record; no partial tree is returned. Links
// to identifiers that are not keys of the document are not errors.
package io
