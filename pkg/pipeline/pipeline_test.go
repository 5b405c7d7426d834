package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
	"github.com/matzehuels/jsonscope/pkg/observability"
)

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func newTestRunner(c *memCache) *Runner {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c == nil {
		return NewRunner(nil, nil, logger)
	}
	return NewRunner(c, nil, logger)
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner(nil, nil, nil) left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		code apperr.Code
	}{
		{"empty", "", apperr.ErrCodeEmptyInput},
		{"blank", " \n", apperr.ErrCodeEmptyInput},
		{"truncated", `{"a":`, apperr.ErrCodeInvalidJSON},
		{"two values", `1 2`, apperr.ErrCodeInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Parse(ctx, []byte(tt.in))
			if got := apperr.GetCode(err); got != tt.code {
				t.Errorf("Parse(%q) code = %q, want %q (err %v)", tt.in, got, tt.code, err)
			}
		})
	}

	if _, err := r.Parse(ctx, []byte(`{"ok": true}`)); err != nil {
		t.Errorf("Parse(valid) error: %v", err)
	}
}

func TestParseMaxDepth(t *testing.T) {
	r := newTestRunner(nil)
	r.MaxDepth = 2

	_, err := r.Parse(context.Background(), []byte(`[[[1]]]`))
	if apperr.GetCode(err) != apperr.ErrCodeInvalidJSON {
		t.Errorf("deep input code = %q, want INVALID_JSON", apperr.GetCode(err))
	}
}

func TestInspect(t *testing.T) {
	r := newTestRunner(nil)

	ins, err := r.Inspect(context.Background(), []byte(`{"a": {"b": [1]}, "c": 2}`))
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if ins.Root == nil || ins.Root.Key != "root" {
		t.Fatalf("Root = %+v, want key root", ins.Root)
	}
	if ins.Stats.Nodes != 3 {
		t.Errorf("Stats.Nodes = %d, want 3", ins.Stats.Nodes)
	}
	if ins.Stats.Depth != 2 {
		t.Errorf("Stats.Depth = %d, want 2", ins.Stats.Depth)
	}
	if ins.Hash == "" {
		t.Error("Hash is empty")
	}

	other, _ := r.Inspect(context.Background(), []byte("{\n  \"a\": {\"b\": [1]},\n  \"c\": 2\n}"))
	if other.Hash != ins.Hash {
		t.Error("whitespace-only differences should hash the same")
	}
}

func TestDiagramCaching(t *testing.T) {
	c := newMemCache()
	r := newTestRunner(c)
	ctx := context.Background()
	doc := []byte(`{"users": [{"name": "a"}]}`)

	first, hit, err := r.DiagramWithCacheInfo(ctx, doc, DiagramOptions{})
	if err != nil {
		t.Fatalf("DiagramWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if !strings.HasPrefix(first, "graph TD\n") {
		t.Errorf("default format should be mermaid, got %q", first)
	}

	second, hit, _ := r.DiagramWithCacheInfo(ctx, doc, DiagramOptions{})
	if !hit {
		t.Error("second call should hit")
	}
	if second != first {
		t.Error("cached diagram differs from generated one")
	}

	_, hit, _ = r.DiagramWithCacheInfo(ctx, doc, DiagramOptions{Theme: "dark"})
	if hit {
		t.Error("different theme should miss")
	}

	_, hit, _ = r.DiagramWithCacheInfo(ctx, doc, DiagramOptions{Refresh: true})
	if hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestDiagramDOT(t *testing.T) {
	r := newTestRunner(nil)
	src, err := r.Diagram(context.Background(), []byte(`{"a": {}}`), DiagramOptions{Format: FormatDOT})
	if err != nil {
		t.Fatalf("Diagram() error: %v", err)
	}
	if !strings.HasPrefix(src, "digraph G {") {
		t.Errorf("DOT output starts with %q", src[:min(len(src), 20)])
	}
}

func TestDiagramInvalidOptions(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	_, err := r.Diagram(ctx, []byte(`{}`), DiagramOptions{Format: "svg"})
	if apperr.GetCode(err) != apperr.ErrCodeInvalidFormat {
		t.Errorf("format svg: code = %q, want INVALID_FORMAT", apperr.GetCode(err))
	}

	_, err = r.Diagram(ctx, []byte(`{}`), DiagramOptions{Theme: "neon"})
	if apperr.GetCode(err) != apperr.ErrCodeInvalidTheme {
		t.Errorf("theme neon: code = %q, want INVALID_THEME", apperr.GetCode(err))
	}

	_, err = r.Diagram(ctx, []byte(`{`), DiagramOptions{})
	if !apperr.IsInvalid(err) {
		t.Errorf("broken document: %v should be an invalid-input error", err)
	}
}

func TestRenderSVG(t *testing.T) {
	c := newMemCache()
	r := newTestRunner(c)
	ctx := context.Background()
	doc := []byte(`{"a": {"b": [1, 2]}}`)

	img, hit, err := r.RenderWithCacheInfo(ctx, doc, RenderOptions{})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if !bytes.Contains(img, []byte("<svg")) {
		t.Error("output is not SVG")
	}

	again, hit, err := r.RenderWithCacheInfo(ctx, doc, RenderOptions{})
	if err != nil {
		t.Fatalf("second render error: %v", err)
	}
	if !hit || !bytes.Equal(again, img) {
		t.Error("second render should come from the cache")
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r := newTestRunner(nil)
	_, err := r.Render(context.Background(), []byte(`{}`), RenderOptions{Format: "pdf"})
	if apperr.GetCode(err) != apperr.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want INVALID_FORMAT", apperr.GetCode(err))
	}
}

func TestCompare(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	res, err := r.Compare(ctx, []byte(`{"a": 1, "b": 2}`), []byte(`{"a": 1, "b": 3, "c": 4}`))
	if err != nil {
		t.Fatalf("Compare() error: %v", err)
	}
	s := res.Stats
	if s.Unchanged != 1 || s.Modified != 1 || s.Added != 1 || s.Removed != 0 {
		t.Errorf("Stats = %+v, want 1 unchanged, 1 modified, 1 added", s)
	}
}

func TestCompareErrors(t *testing.T) {
	r := newTestRunner(nil)
	ctx := context.Background()

	tests := []struct {
		name       string
		left       string
		right      string
		wantSide   string
		wantPrefix string
	}{
		{"blank left", "  ", `{}`, "", MissingInputMessage},
		{"blank right", `{}`, "", "", MissingInputMessage},
		{"bad left", `{"a":`, `{}`, SideLeft, "Invalid JSON in left panel: "},
		{"bad right", `{}`, `[1,]`, SideRight, "Invalid JSON in right panel: "},
		{"both bad reports left", `{`, `{`, SideLeft, "Invalid JSON in left panel: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Compare(ctx, []byte(tt.left), []byte(tt.right))
			if err == nil {
				t.Fatal("expected error")
			}
			if msg := apperr.UserMessage(err); !strings.HasPrefix(msg, tt.wantPrefix) {
				t.Errorf("UserMessage() = %q, want prefix %q", msg, tt.wantPrefix)
			}

			var side *SideError
			if got := errors.As(err, &side); got != (tt.wantSide != "") {
				t.Fatalf("errors.As(SideError) = %v", got)
			}
			if side != nil && side.Side != tt.wantSide {
				t.Errorf("Side = %q, want %q", side.Side, tt.wantSide)
			}
		})
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	mu     sync.Mutex
	stages []observability.Stage
	hits   int
	misses int
}

func (h *countingHooks) OnStageStart(_ context.Context, s observability.Stage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stages = append(h.stages, s)
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func TestRunnerEmitsHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := newTestRunner(newMemCache())
	ctx := context.Background()
	doc := []byte(`{"a": []}`)

	if _, err := r.Diagram(ctx, doc, DiagramOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Diagram(ctx, doc, DiagramOptions{}); err != nil {
		t.Fatal(err)
	}

	if h.misses != 1 || h.hits != 1 {
		t.Errorf("misses/hits = %d/%d, want 1/1", h.misses, h.hits)
	}
	want := []observability.Stage{
		observability.StageParse, observability.StageTransform, observability.StageDiagram,
		observability.StageParse, observability.StageTransform,
	}
	if len(h.stages) != len(want) {
		t.Fatalf("stages = %v, want %v", h.stages, want)
	}
	for i := range want {
		if h.stages[i] != want[i] {
			t.Errorf("stages[%d] = %s, want %s", i, h.stages[i], want[i])
		}
	}
}
