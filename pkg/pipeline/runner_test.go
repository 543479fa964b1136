package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/observability"
	"github.com/matzehuels/siteoverview/pkg/sites"
	"github.com/matzehuels/siteoverview/pkg/sites/source"
)

// memCache is an in-memory Cache that counts operations.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gets int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func (c *memCache) keysWithPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n
}

func testSource() source.Source {
	return source.NewStatic(sites.Overview{
		Title: "Sites",
		Sites: []sites.Site{
			{ID: "munich"},
			{ID: "berlin", CountWarning: 1},
			{ID: "hamburg", CountCritical: 2},
			{ID: "cologne"},
			{ID: "bremen"},
		},
	})
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	res, err := r.Execute(ctx, testSource(), Options{Width: 600, Height: 300, Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Geometry == nil || res.Geometry.Columns != 5 {
		t.Fatalf("Geometry = %+v, want 5 columns", res.Geometry)
	}
	if res.Infeasible != nil {
		t.Errorf("Infeasible = %v", res.Infeasible)
	}
	if len(res.Scene.Markers) != 5 {
		t.Errorf("markers = %d, want 5", len(res.Scene.Markers))
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(`id="site-hamburg"`)) {
		t.Error("SVG should contain the hamburg marker")
	}
	if len(res.Artifacts[FormatJSON]) == 0 {
		t.Error("JSON artifact missing")
	}
	if res.OverviewHash == "" || res.Stats.Sites != 5 || res.Stats.Items != 5 {
		t.Errorf("result metadata = %q %+v", res.OverviewHash, res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}

	res, err = r.Execute(ctx, testSource(), Options{Width: 600, Height: 300, Formats: []string{FormatSVG, FormatJSON}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.CacheInfo.LayoutHit || !res.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", res.CacheInfo)
	}
}

func TestExecuteLinkTargetAndFrame(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	plain, err := r.Execute(ctx, testSource(), Options{Width: 600, Height: 300, Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	framed, err := r.Execute(ctx, testSource(), Options{
		Width: 600, Height: 300, Formats: []string{FormatSVG},
		LinkTarget: "_blank", Frame: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if framed.CacheInfo.RenderHit {
		t.Error("link target and frame should be part of the artifact key")
	}

	svg := framed.Artifacts[FormatSVG]
	if !bytes.Contains(svg, []byte(`target="_blank"`)) || !bytes.Contains(svg, []byte(`class="frame"`)) {
		t.Errorf("framed SVG lacks target or frame:\n%s", svg)
	}
	if bytes.Contains(plain.Artifacts[FormatSVG], []byte(`class="frame"`)) {
		t.Error("plain SVG should not draw a frame")
	}
	if got := c.keysWithPrefix("artifact:"); got != 2 {
		t.Errorf("artifact keys = %d, want 2", got)
	}
}

func TestExecuteInfeasibleRendersEmptyPanel(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	res, err := r.Execute(ctx, testSource(), Options{Width: 20, Height: 20})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Geometry != nil {
		t.Error("Geometry should be nil for an infeasible layout")
	}
	if !IsInfeasible(res.Infeasible) {
		t.Errorf("Infeasible = %v", res.Infeasible)
	}
	if res.Scene.Feasible() || len(res.Scene.Markers) != 0 {
		t.Error("scene should be empty")
	}
	svg := res.Artifacts[FormatSVG]
	if bytes.Contains(svg, []byte(`class="main_box"`)) {
		t.Error("empty panel should not draw markers")
	}
	if !bytes.Contains(svg, []byte(">Sites</text>")) {
		t.Error("empty panel should keep its title")
	}
	if n := c.keysWithPrefix("layout:"); n != 0 {
		t.Errorf("infeasible layouts must not be cached, found %d entries", n)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), testSource(), Options{Formats: []string{"gif"}}); err == nil {
		t.Error("invalid format should fail")
	}
}

func TestExecuteSourceError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	src := source.NewFile("/does/not/exist.json", "")
	if _, err := r.Execute(context.Background(), src, Options{}); err == nil {
		t.Error("missing inventory should fail")
	}
}

// countingSource counts how often the wrapped source is loaded.
type countingSource struct {
	source.Source
	loads int
}

func (s *countingSource) Load(ctx context.Context) (sites.Overview, error) {
	s.loads++
	return s.Source.Load(ctx)
}

func TestLoadWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	src := &countingSource{Source: testSource()}

	ov, hit, err := r.LoadWithCacheInfo(ctx, src, Options{})
	if err != nil {
		t.Fatalf("LoadWithCacheInfo: %v", err)
	}
	if hit || src.loads != 1 {
		t.Fatalf("first load: hit=%v loads=%d", hit, src.loads)
	}
	if n := c.keysWithPrefix("overview:"); n != 1 {
		t.Errorf("overview entries = %d, want 1", n)
	}

	cached, hit, err := r.LoadWithCacheInfo(ctx, src, Options{})
	if err != nil {
		t.Fatalf("LoadWithCacheInfo: %v", err)
	}
	if !hit || src.loads != 1 {
		t.Errorf("second load: hit=%v loads=%d, want a cache hit", hit, src.loads)
	}
	if sites.Hash(cached) != sites.Hash(ov) {
		t.Error("cached overview differs from the loaded one")
	}

	if _, hit, _ := r.LoadWithCacheInfo(ctx, src, Options{Refresh: true}); hit || src.loads != 2 {
		t.Errorf("refresh: hit=%v loads=%d, want a fresh load", hit, src.loads)
	}
}

func TestExecuteReportsLoadHit(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	src := &countingSource{Source: testSource()}
	opts := Options{Width: 600, Height: 300}

	if _, err := r.Execute(ctx, src, opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	res, err := r.Execute(ctx, src, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.CacheInfo.LoadHit || src.loads != 1 {
		t.Errorf("LoadHit = %v after %d loads, want the cached overview", res.CacheInfo.LoadHit, src.loads)
	}
}

func TestLayoutWithCacheInfo(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := Options{Width: 600, Height: 300}

	g1, hit, err := r.LayoutWithCacheInfo(ctx, 5, opts)
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	g2, hit, err := r.LayoutWithCacheInfo(ctx, 5, opts)
	if err != nil || !hit {
		t.Fatalf("second call: hit=%v err=%v", hit, err)
	}
	if g1 != g2 {
		t.Errorf("cached geometry differs:\n%+v\n%+v", g1, g2)
	}

	opts.Refresh = true
	if _, hit, _ := r.LayoutWithCacheInfo(ctx, 5, opts); hit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestLayoutCacheKeyedByItems(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	opts := Options{Width: 600, Height: 300}

	if _, err := r.Layout(ctx, 5, opts); err != nil {
		t.Fatal(err)
	}
	_, hit, err := r.LayoutWithCacheInfo(ctx, 6, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("different item counts must not share a cache entry")
	}
}

func TestScopedKeyerIsolatesRunners(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	a := NewRunner(c, cache.NewScopedKeyer(nil, "a:"), nil)
	b := NewRunner(c, cache.NewScopedKeyer(nil, "b:"), nil)
	opts := Options{Width: 600, Height: 300}

	if _, err := a.Layout(ctx, 5, opts); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := b.LayoutWithCacheInfo(ctx, 5, opts); hit {
		t.Error("runners with different scopes must not share entries")
	}
}

func TestRunnerEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &countingHooks{}
	observability.SetLayoutHooks(hooks)
	observability.SetRenderHooks(hooks)

	r := NewRunner(nil, nil, nil)
	if _, err := r.Execute(context.Background(), testSource(), Options{Width: 600, Height: 300}); err != nil {
		t.Fatal(err)
	}
	if hooks.layouts != 1 || hooks.renders != 1 {
		t.Errorf("hooks: layouts=%d renders=%d, want 1 each", hooks.layouts, hooks.renders)
	}
}

type countingHooks struct {
	observability.NoopLayoutHooks
	observability.NoopRenderHooks
	layouts, renders int
}

func (h *countingHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
	h.layouts++
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.renders++
}
