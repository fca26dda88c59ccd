package graph

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/treeplot/pkg/adapter"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/tree"
)

func sampleGraph(t *testing.T) adapter.Graph {
	t.Helper()
	g, err := adapter.New().Build(tree.Sample())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestFromAdapter(t *testing.T) {
	p := FromAdapter(sampleGraph(t))

	if want := []string{"1", "2", "3", "4"}; !reflect.DeepEqual(p.Nodes.Index, want) {
		t.Errorf("index = %v, want %v", p.Nodes.Index, want)
	}
	if want := []string{"#3288bd", "#66c2a5", "#abdda4", "#e6f598"}; !reflect.DeepEqual(p.Nodes.FillColor, want) {
		t.Errorf("fill_color = %v, want %v", p.Nodes.FillColor, want)
	}
	if want := []string{"1", "1", "1", "2", "4"}; !reflect.DeepEqual(p.Edges.Start, want) {
		t.Errorf("start = %v", p.Edges.Start)
	}
	if want := []string{"2", "3", "4", "3", "1"}; !reflect.DeepEqual(p.Edges.End, want) {
		t.Errorf("end = %v", p.Edges.End)
	}
	if p.Layout["4"] != (Point{400, 500}) {
		t.Errorf("layout[4] = %v", p.Layout["4"])
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleGraph(t)
	data, err := Marshal(want)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestMarshalEmpty(t *testing.T) {
	g, _ := adapter.New().Build(tree.New())
	data, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["node_renderer"]["index"]) != "[]" {
		t.Errorf("index = %s, want []", raw["node_renderer"]["index"])
	}
	if string(raw["edge_renderer"]["start"]) != "[]" {
		t.Errorf("start = %s, want []", raw["edge_renderer"]["start"])
	}
}

func TestToAdapterErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"node columns", `{"node_renderer":{"index":["a"],"fill_color":[]}}`, "node table"},
		{"edge columns", `{"edge_renderer":{"start":["a"],"end":[]}}`, "edge table"},
		{"duplicate", `{"node_renderer":{"index":["a","a"],"fill_color":["#000","#000"]}}`, "duplicate"},
		{"malformed", `{`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidateVizType(t *testing.T) {
	for _, v := range VizTypes {
		if err := ValidateVizType(v); err != nil {
			t.Errorf("ValidateVizType(%q) = %v", v, err)
		}
	}
	err := ValidateVizType("tower")
	if !perrors.Is(err, perrors.ErrCodeInvalidVizType) {
		t.Errorf("ValidateVizType(tower) = %v", err)
	}
}

func TestUnmarshal(t *testing.T) {
	p, err := Unmarshal([]byte(`{"graph_layout":{"x":[1.5,-2]}}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Layout["x"] != (Point{1.5, -2}) {
		t.Errorf("layout = %v", p.Layout)
	}
}
