package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestRegistry(t *testing.T) {
	Reset()
	defer Reset()

	p, c, s := &testPipelineHooks{}, &testCacheHooks{}, &testServerHooks{}
	SetPipelineHooks(p)
	SetCacheHooks(c)
	SetServerHooks(s)
	SetPipelineHooks(nil)

	if Pipeline() != PipelineHooks(p) || Cache() != CacheHooks(c) || Server() != ServerHooks(s) {
		t.Fatal("registered hooks not returned")
	}

	Reset()
	_, okP := Pipeline().(NoopPipelineHooks)
	_, okC := Cache().(NoopCacheHooks)
	_, okS := Server().(NoopServerHooks)
	if !okP || !okC || !okS {
		t.Error("Reset should restore the no-op hooks")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetCacheHooks(&testCacheHooks{})
			}
			Cache().OnCacheMiss(context.Background(), "png")
		}()
	}
	wg.Wait()
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	h := NewLogHooks(logger)
	h.Install()
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || Server() != ServerHooks(h) {
		t.Fatal("Install should register all categories")
	}

	ctx := context.Background()
	Pipeline().OnFetchComplete(ctx, "redis:k", 4, time.Millisecond, nil)
	Pipeline().OnAdaptComplete(ctx, 4, 5, time.Millisecond, nil)
	Pipeline().OnRenderComplete(ctx, "canvas", []string{"svg"}, time.Millisecond, errors.New("boom"))
	Cache().OnCacheHit(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"fetch done", "source=redis:k", "nodes=4", "edges=5", "render failed", "boom", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
