package adapter

import "github.com/matzehuels/treeplot/pkg/tree"

// Edges flattens the links of the nodes in order into parallel start/end
// sequences. Targets are not checked against the tree. IDs in order that
// are not keys of t contribute no edges.
func Edges(t *tree.Tree, order []tree.ID) (start, end []tree.ID) {
	start = make([]tree.ID, 0, t.LinkCount())
	end = make([]tree.ID, 0, t.LinkCount())
	for _, src := range order {
		n, ok := t.Node(src)
		if !ok {
			continue
		}
		for _, dst := range n.Links {
			start = append(start, src)
			end = append(end, dst)
		}
	}
	return start, end
}
