package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/graph"
	"github.com/matzehuels/treeplot/pkg/tree"
)

func ExampleWrite() {
	t := tree.New()
	_ = t.Add("a", tree.Node{Links: []tree.ID{"b"}, Pos: tree.Position{X: 0, Y: 0}})
	_ = t.Add("b", tree.Node{Pos: tree.Position{X: 10, Y: 20}})

	g, _ := adapter.New().Build(t)
	if err := graph.Write(g, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "node_renderer": {
	//     "index": [
	//       "a",
	//       "b"
	//     ],
	//     "fill_color": [
	//       "#3288bd",
	//       "#66c2a5"
	//     ]
	//   },
	//   "edge_renderer": {
	//     "start": [
	//       "a"
	//     ],
	//     "end": [
	//       "b"
	//     ]
	//   },
	//   "graph_layout": {
	//     "a": [
	//       0,
	//       0
	//     ],
	//     "b": [
	//       10,
	//       20
	//     ]
	//   }
	// }
}
