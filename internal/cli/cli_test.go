package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/treeplot/pkg/cache"
	perrors "github.com/matzehuels/treeplot/pkg/errors"
	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/observability"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// isolate points the XDG directories at a temp dir and captures status
// output.
func isolate(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(envRedisURL, "")
	t.Setenv(envMongoURI, "")
	t.Setenv(envMongoDB, "")

	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return dir, &buf
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", "treeplot"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestXDGOverrides(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xc")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xg")

	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xc", "treeplot") {
		t.Errorf("cacheDir() = %q", dir)
	}
	if dir, _ := configDir(); dir != filepath.Join("/tmp/xg", "treeplot") {
		t.Errorf("configDir() = %q", dir)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"render", "show", "inspect", "export", "seed", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVerboseInstallsLogHooks(t *testing.T) {
	isolate(t)
	defer observability.Reset()

	if _, err := execute(t, "-v", "cache", "path"); err != nil {
		t.Fatal(err)
	}
	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Errorf("pipeline hooks = %T, want *LogHooks", observability.Pipeline())
	}
}

func TestNewCache(t *testing.T) {
	isolate(t)
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	nc, err := c.newCache(ctx, cacheBackendNone)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := nc.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T", nc)
	}

	fc, err := c.newCache(ctx, cacheBackendFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fc.(*cache.FileCache); !ok {
		t.Errorf("file backend = %T", fc)
	}

	if _, err := c.newCache(ctx, cacheBackendRedis); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("redis without URL: err = %v", err)
	}
	if _, err := c.newCache(ctx, "memcached"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("unknown backend: err = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, status := isolate(t)
	base := filepath.Join(dir, "out", "plot")

	_, err := execute(t, "render", "-f", "svg,json,dot", "-o", base, "--labels", "--no-cache")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, ext := range []string{"svg", "json", "dot"} {
		data, err := os.ReadFile(base + "." + ext)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}
	if !strings.Contains(status.String(), "4 nodes") {
		t.Errorf("status output = %q", status.String())
	}
}

func TestRenderSingleOutputPath(t *testing.T) {
	dir, _ := isolate(t)
	out := filepath.Join(dir, "graph.data")

	if _, err := execute(t, "render", "-f", "json", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"edge_renderer"`) {
		t.Errorf("unexpected json: %s", data)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code perrors.Code
	}{
		{"bad format", []string{"render", "-f", "gif"}, perrors.ErrCodeInvalidFormat},
		{"bad type", []string{"render", "-t", "tower"}, perrors.ErrCodeInvalidVizType},
		{"bad palette", []string{"render", "--palette", "nope"}, perrors.ErrCodeInvalidPalette},
		{"bad source", []string{"render", "-s", "postgres:x"}, perrors.ErrCodeInvalidSource},
		{"redis without url", []string{"render", "-s", "redis:k"}, perrors.ErrCodeInvalidSource},
		{"missing file", []string{"render", "-s", "file:/nonexistent/t.json"}, perrors.ErrCodeFileNotFound},
		{"exhausted", []string{"render", "--palette", "#111111"}, perrors.ErrCodePaletteExhausted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := execute(t, tt.args...)
			if !perrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExportThenRenderFile(t *testing.T) {
	dir, _ := isolate(t)
	treeFile := filepath.Join(dir, "tree.toml")

	if _, err := execute(t, "export", "-o", treeFile); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, err := treeio.Import(treeFile)
	if err != nil {
		t.Fatalf("import exported file: %v", err)
	}
	if got.Len() != tree.Sample().Len() {
		t.Errorf("exported %d nodes", got.Len())
	}

	out := filepath.Join(dir, "plot.svg")
	if _, err := execute(t, "render", "-s", treeFile, "-o", out); err != nil {
		t.Fatalf("render from file: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}
}

func TestSeedFile(t *testing.T) {
	dir, status := isolate(t)
	target := filepath.Join(dir, "seeded.json")

	if _, err := execute(t, "seed", "file:"+target); err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := treeio.Import(target)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 4 {
		t.Errorf("seeded %d nodes", got.Len())
	}
	if !strings.Contains(status.String(), "Seeded") {
		t.Errorf("status = %q", status.String())
	}
}

func TestSeedRejectsSample(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "seed", "sample"); !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestCachePathAndClear(t *testing.T) {
	dir, status := isolate(t)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	cdir := filepath.Join(dir, "cache", "treeplot")
	if strings.TrimSpace(out) != cdir {
		t.Errorf("cache path = %q, want %q", out, cdir)
	}

	fc, _ := cache.NewFileCache(cdir)
	_ = fc.Set(context.Background(), "k", []byte("v"), 0)
	if _, err := execute(t, "cache", "info"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Backend: file") || !strings.Contains(status.String(), "1 artifacts") {
		t.Errorf("info status = %q", status.String())
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(status.String(), "Cleared 1 cached artifacts") {
		t.Errorf("status = %q", status.String())
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "treeplot") {
		t.Error("bash completion should mention the command name")
	}
}
