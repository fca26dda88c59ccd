package tree

// Sample returns the built-in four node example:
//
//	1 → 2, 3, 4   at (130, 25)
//	2 → 3         at (150, 100)
//	3             at (250, 130)
//	4 → 1         at (400, 500)
//
// A new Tree is built on every call, so callers may mutate the result.
func Sample() *Tree {
	t := New()
	for _, e := range []struct {
		id    int
		links []int
		x, y  float64
	}{
		{1, []int{2, 3, 4}, 130, 25},
		{2, []int{3}, 150, 100},
		{3, nil, 250, 130},
		{4, []int{1}, 400, 500},
	} {
		links := make([]ID, len(e.links))
		for i, l := range e.links {
			links[i] = IntID(l)
		}
		// Identifiers are unique and non-empty, so Add cannot fail here.
		_ = t.Add(IntID(e.id), Node{Links: links, Pos: Position{X: e.x, Y: e.y}})
	}
	return t
}
