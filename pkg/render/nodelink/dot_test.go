package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/treeplot/pkg/adapter"
	"github.com/matzehuels/treeplot/pkg/tree"
)

func sample(t *testing.T) adapter.Graph {
	t.Helper()
	g, err := adapter.New().Build(tree.Sample())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"1" [pos="130,25!", fillcolor="#3288bd"`,
		`"4" [pos="400,500!", fillcolor="#e6f598"`,
		`"1" -> "2";`,
		`"4" -> "1";`,
		`label=""`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, " -> "); n != 5 {
		t.Errorf("edges = %d, want 5", n)
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(sample(t), Options{Labels: true, Radius: 36})
	if !strings.Contains(dot, `label="3"`) {
		t.Error("labels missing")
	}
	if !strings.Contains(dot, "width=1,") {
		t.Errorf("radius 36 should give a 1in node:\n%s", dot)
	}
}

func TestToDOTDangling(t *testing.T) {
	tr := tree.New()
	_ = tr.Add("a", tree.Node{Links: []tree.ID{"x", "x"}, Pos: tree.Position{X: 1, Y: 2}})
	g, _ := adapter.New().Build(tr)

	dot := ToDOT(g, Options{})
	if n := strings.Count(dot, `"x" [shape=point`); n != 1 {
		t.Errorf("dangling target declared %d times, want 1", n)
	}
	if n := strings.Count(dot, `"a" -> "x";`); n != 2 {
		t.Errorf("duplicate edges = %d, want 2", n)
	}
}

func TestToDOTQuotesIDs(t *testing.T) {
	tr := tree.New()
	_ = tr.Add(`a"b`, tree.Node{Pos: tree.Position{}})
	g, _ := adapter.New().Build(tr)
	if dot := ToDOT(g, Options{}); !strings.Contains(dot, `"a\"b"`) {
		t.Errorf("id not quoted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("got %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(sample(t), Options{Labels: true}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, "<svg") || !strings.Contains(s, "</svg>") {
		t.Error("output is not SVG")
	}
	if !strings.Contains(s, "#3288bd") {
		t.Error("fill color missing from output")
	}
}
