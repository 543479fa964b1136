package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/pipeline"
	"github.com/matzehuels/siteoverview/pkg/sites"
	"github.com/matzehuels/siteoverview/pkg/sites/source"
)

func testOverview() sites.Overview {
	return sites.Overview{
		Title: "Sites",
		Sites: []sites.Site{
			{ID: "munich"},
			{ID: "berlin", CountWarning: 1},
			{ID: "hamburg", CountCritical: 2},
			{ID: "cologne"},
			{ID: "bremen"},
		},
	}
}

type failingSource struct{}

func (failingSource) Load(context.Context) (sites.Overview, error) {
	return sites.Overview{}, fmt.Errorf("connection refused")
}
func (failingSource) Name() string { return "failing" }
func (failingSource) Close() error { return nil }

func newTestServer(t *testing.T, src source.Source) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	s := New(Options{
		Source:   src,
		Runner:   pipeline.NewRunner(fc, nil, nil),
		Defaults: pipeline.Options{Width: 600, Height: 300, LinkBase: "view.py"},
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/healthz")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestSites(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/api/v1/sites")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[sitesResponse](t, resp)
	assert.Equal(t, "Sites", body.Title)
	assert.Equal(t, sites.ModeSites, body.RenderMode)
	assert.Equal(t, sites.Hash(testOverview()), body.Hash)
	require.Len(t, body.Sites, 5)
	assert.Equal(t, sites.StateCritical, body.Sites[2].State)
	assert.Equal(t, 3, body.Counts["ok"])
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))

	resp := get(t, ts, "/api/v1/layout")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[layoutResponse](t, resp)
	assert.False(t, body.Cached)
	assert.Equal(t, 5, body.Geometry.Columns)
	assert.Equal(t, 1, body.Geometry.Rows)
	require.Len(t, body.Placements, 5)
	assert.InDelta(t, 300, body.Placements[2].Hexagon.X, 1e-9)
	assert.InDelta(t, 148.5, body.Placements[2].Hexagon.Y, 1e-9)

	resp = get(t, ts, "/api/v1/layout")
	assert.True(t, decode[layoutResponse](t, resp).Cached)
}

func TestLayoutItemsOverride(t *testing.T) {
	ts := newTestServer(t, failingSource{})

	resp := get(t, ts, "/api/v1/layout?width=600&height=300&items=12")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[layoutResponse](t, resp)
	assert.Equal(t, 12, body.Geometry.Items)
	assert.Len(t, body.Placements, 12)
}

func TestLayoutInfeasible(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/api/v1/layout?width=30&height=30")

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[errorResponse](t, resp)
	assert.Equal(t, errors.ErrCodeInfeasibleLayout, body.Code)
}

func TestLayoutBadQuery(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))

	for _, q := range []string{"width=abc", "height=-1", "items=-3", "refresh=maybe"} {
		t.Run(q, func(t *testing.T) {
			resp := get(t, ts, "/api/v1/layout?"+q)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestOverview(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))

	resp := get(t, ts, "/api/v1/overview.svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Equal(t, "MISS", resp.Header.Get(HeaderCache))
	assert.Equal(t, "5x1", resp.Header.Get(HeaderLayout))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `id="site-hamburg"`)
	assert.Contains(t, string(body), `view.py?site=hamburg`)

	resp = get(t, ts, "/api/v1/overview.svg")
	assert.Equal(t, "HIT", resp.Header.Get(HeaderCache))
}

func TestOverviewInfeasibleRendersEmptyPanel(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/api/v1/overview.json?width=30&height=30")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "infeasible", resp.Header.Get(HeaderLayout))
	body := decode[map[string]any](t, resp)
	assert.Equal(t, false, body["feasible"])
}

func TestOverviewUnknownFormat(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/api/v1/overview.gif")

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeInvalidFormat, decode[errorResponse](t, resp).Code)
}

func TestOverviewSourceUnavailable(t *testing.T) {
	ts := newTestServer(t, failingSource{})
	resp := get(t, ts, "/api/v1/overview.svg")

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, decode[errorResponse](t, resp).Code)
}

func TestHit(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))

	tests := []struct {
		query string
		hit   bool
		id    string
	}{
		{"x=300&y=150", true, "hamburg"},
		{"x=10&y=40", true, "munich"},
		{"x=2&y=2", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := get(t, ts, "/api/v1/hit?"+tt.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			body := decode[hitResponse](t, resp)
			assert.Equal(t, tt.hit, body.Hit)
			assert.Equal(t, tt.id, body.ID)
		})
	}

	resp := get(t, ts, "/api/v1/hit?x=1")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))
	resp := get(t, ts, "/nope")

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, errors.ErrCodeNotFound, decode[errorResponse](t, resp).Code)
}

func TestRequestID(t *testing.T) {
	ts := newTestServer(t, source.NewStatic(testOverview()))

	resp := get(t, ts, "/healthz")
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, id, resp2.Header.Get(RequestIDHeader))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := New(Options{Source: source.NewStatic(testOverview())})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
