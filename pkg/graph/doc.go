// Package graph provides the wire format for adapted trees.
//
// This package defines the canonical JSON form of an [adapter.Graph], used
// for the json output format and the /graph.json endpoint of the viewer.
//
// # Format
//
// The layout mirrors the column data sources of browser plotting libraries:
// one table for nodes, one for edges, plus a static layout.
//
//	{
//	  "node_renderer": {
//	    "index": ["1", "2"],
//	    "fill_color": ["#3288bd", "#66c2a5"]
//	  },
//	  "edge_renderer": {
//	    "start": ["1"],
//	    "end": ["2"]
//	  },
//	  "graph_layout": {
//	    "1": [130, 25],
//	    "2": [150, 100]
//	  }
//	}
//
// Columns in each table have equal length. fill_color[i] is the color of
// index[i]; start[i] and end[i] form edge i.
//
// # Constants
//
// This package is the single source of truth for surface names:
//
//	graph.VizTypeCanvas    // "canvas"
//	graph.VizTypeNodelink  // "nodelink"
//
// # Converting
//
//	wire := graph.FromAdapter(g)  // adapter.Graph → Plot
//	g, _ := wire.ToAdapter()      // Plot → adapter.Graph
//	data, _ := graph.Marshal(g)   // adapter.Graph → []byte
package graph
