package canvas_test

import (
	"fmt"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/render/canvas"
	"github.com/matzehuels/treeplot/pkg/tree"
)

func ExampleRenderSVG() {
	g, _ := adapter.New().Build(tree.Sample())
	svg, stats := canvas.RenderSVG(g, canvas.WithLabels())
	fmt.Println(len(svg) > 0)
	fmt.Printf("%d nodes, %d edges, %d skipped\n", stats.Nodes, stats.Edges, stats.Skipped)
	// Output:
	// true
	// 4 nodes, 5 edges, 0 skipped
}
