package source

import (
	"context"
	"path/filepath"
	"testing"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/tree"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    Spec
		wantErr bool
	}{
		{"", Spec{Kind: KindSample}, false},
		{"sample", Spec{Kind: KindSample}, false},
		{"file:trees/a.json", Spec{Kind: KindFile, Target: "trees/a.json"}, false},
		{"trees/a.toml", Spec{Kind: KindFile, Target: "trees/a.toml"}, false},
		{"C:/trees/a.json", Spec{Kind: KindFile, Target: "C:/trees/a.json"}, false},
		{"redis:plots:main", Spec{Kind: KindRedis, Target: "plots:main"}, false},
		{"redis:", Spec{Kind: KindRedis}, false},
		{"redis", Spec{Kind: KindRedis}, false},
		{"mongo", Spec{Kind: KindMongo}, false},
		{"mongo:nodes", Spec{Kind: KindMongo, Target: "nodes"}, false},
		{"file:", Spec{}, true},
		{"postgres:tbl", Spec{}, true},
		{"tree.yaml", Spec{}, true},
	}
	for _, tt := range tests {
		got, err := ParseSpec(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSpec(%q) err = %v", tt.in, err)
			continue
		}
		if err != nil && !perrors.Is(err, perrors.ErrCodeInvalidSource) {
			t.Errorf("ParseSpec(%q) code = %s", tt.in, perrors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSpecString(t *testing.T) {
	if s := (Spec{Kind: KindSample}).String(); s != "sample" {
		t.Errorf("String = %s", s)
	}
	if s := (Spec{Kind: KindRedis, Target: "k"}).String(); s != "redis:k" {
		t.Errorf("String = %s", s)
	}
}

func TestOpenSample(t *testing.T) {
	src, err := Open(context.Background(), Spec{Kind: KindSample}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	got, err := src.Tree(context.Background())
	if err != nil || got.Len() != 4 {
		t.Fatalf("Tree = %v, %v", got, err)
	}
	if Describe(src) != "sample" {
		t.Errorf("Describe = %s", Describe(src))
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	if err := treeio.Export(tree.Sample(), path); err != nil {
		t.Fatal(err)
	}
	src, err := Open(context.Background(), Spec{Kind: KindFile, Target: path}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := src.Tree(context.Background())
	if err != nil || got.LinkCount() != 5 {
		t.Fatalf("Tree = %v, %v", got, err)
	}
	saver, ok := src.(Saver)
	if !ok {
		t.Fatal("file source must be a Saver")
	}
	small := tree.New()
	if err := small.Add("only", tree.Node{Links: []tree.ID{}}); err != nil {
		t.Fatal(err)
	}
	if err := saver.Save(context.Background(), small); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = src.Tree(context.Background())
	if err != nil || got.Len() != 1 || got.IDs()[0] != "only" {
		t.Fatalf("Tree after Save = %v, %v", got, err)
	}
}

func TestOpenMissingConfig(t *testing.T) {
	for _, spec := range []Spec{{Kind: KindRedis, Target: "k"}, {Kind: KindMongo, Target: "c"}, {Kind: "ftp"}} {
		_, err := Open(context.Background(), spec, Config{})
		if !perrors.Is(err, perrors.ErrCodeInvalidSource) {
			t.Errorf("Open(%s) err = %v", spec, err)
		}
	}
}

func TestDescribeFallback(t *testing.T) {
	if got := Describe(tree.NewStaticSource(nil)); got != "*tree.StaticSource" {
		t.Errorf("Describe = %s", got)
	}
}
