package cli

import "testing"

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, spec string
		want         string
	}{
		{"", "sample", "treeplot"},
		{"", "", "treeplot"},
		{"", "redis:plots:main", "treeplot"},
		{"", "mongo:nodes", "treeplot"},
		{"", "file:trees/main.toml", "main"},
		{"", "trees/main.json", "main"},
		{"out/plot.svg", "sample", "out/plot"},
		{"out/plot.png", "sample", "out/plot"},
		{"out/plot", "sample", "out/plot"},
		{"out/plot.v2", "sample", "out/plot.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.spec); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.spec, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, spec, format string
		multi                bool
		want                 string
	}{
		{"plot.svg", "sample", "svg", false, "plot.svg"},
		{"anything.out", "sample", "svg", false, "anything.out"},
		{"plot.svg", "sample", "png", true, "plot.png"},
		{"", "sample", "json", false, "treeplot.json"},
		{"", "file:t.toml", "dot", true, "t.dot"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.spec, tt.format, tt.multi); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.spec, tt.format, tt.multi, got, tt.want)
		}
	}
}
