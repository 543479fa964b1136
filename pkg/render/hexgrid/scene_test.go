package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

const delta = 1e-9

func fiveSites() sites.Overview {
	return sites.Overview{
		Title: "Sites",
		Sites: []sites.Site{
			{ID: "munich"},
			{ID: "berlin", Title: "Berlin", CountWarning: 2},
			{ID: "hamburg", CountCritical: 1},
			{ID: "cologne", CountInDowntime: 3},
			{ID: "bremen", Name: "Bremen HQ"},
		},
	}
}

func computeFor(t *testing.T, w, h float64, items int) layout.Geometry {
	t.Helper()
	g, err := layout.Compute(layout.Request{Width: w, Height: h, Items: items}, layout.DefaultConstants())
	require.NoError(t, err)
	return g
}

func TestBuild(t *testing.T) {
	ov := fiveSites()
	g := computeFor(t, 600, 300, len(ov.Sites))

	s := Build(ov, g, sites.LinkBuilder{Base: "view.py"})

	assert.True(t, s.Feasible())
	assert.Equal(t, 600.0, s.Width)
	assert.Equal(t, 300.0, s.Height)
	assert.Equal(t, "Sites", s.Title)
	require.Len(t, s.Markers, 5)

	m := s.Markers[2]
	assert.Equal(t, "hamburg", m.ID)
	assert.Equal(t, "hamburg", m.Label)
	assert.Equal(t, sites.StateCritical, m.State)
	assert.Equal(t, "view.py?site=hamburg", m.URL)
	assert.InDelta(t, 240.8, m.Box.Left, delta)
	assert.InDelta(t, 34.0, m.Box.Top, delta)
	assert.InDelta(t, 300.0, m.Center.X, delta)
	assert.InDelta(t, 148.5, m.Center.Y, delta)
	assert.InDelta(t, 57.0, m.Radius, delta)
	assert.True(t, m.ShowLabel)
	assert.InDelta(t, 300.0, m.LabelAnchor.X, delta)
	assert.InDelta(t, 224.5, m.LabelAnchor.Y, delta)

	assert.Equal(t, "Berlin", s.Markers[1].Label)
	assert.Equal(t, "Bremen HQ", s.Markers[4].Label)
	assert.Equal(t, sites.StateDowntime, s.Markers[3].State)
}

func TestBuildKeepsCallerOrder(t *testing.T) {
	ov := fiveSites()
	g := computeFor(t, 308, 274, len(ov.Sites))

	s := Build(ov, g, nil)
	for i, m := range s.Markers {
		assert.Equal(t, ov.Sites[i].ID, m.ID)
		assert.Empty(t, m.URL)
	}
	// Three columns after rebalancing: the fourth site starts row two.
	assert.InDelta(t, s.Markers[0].Box.Left, s.Markers[3].Box.Left, delta)
	assert.Greater(t, s.Markers[3].Box.Top, s.Markers[0].Box.Top)
}

func TestBuildHostsMode(t *testing.T) {
	ov := fiveSites()
	ov.RenderMode = sites.ModeHosts
	g := computeFor(t, 600, 300, ov.Items())

	s := Build(ov, g, nil)
	assert.True(t, s.Feasible())
	assert.Empty(t, s.Markers)
	assert.Equal(t, "Sites", s.Title)
}

func TestEmpty(t *testing.T) {
	s := Empty(10, 10, "Tiny")
	assert.False(t, s.Feasible())
	assert.NotNil(t, s.Markers)
	assert.Empty(t, s.Markers)
	assert.Equal(t, 10.0, s.Width)

	_, ok := s.MarkerAt(layout.Point{X: 5, Y: 5})
	assert.False(t, ok)
}

func TestMarkerAt(t *testing.T) {
	ov := fiveSites()
	s := Build(ov, computeFor(t, 600, 300, len(ov.Sites)), nil)

	m, ok := s.MarkerAt(layout.Point{X: 300, Y: 100})
	require.True(t, ok)
	assert.Equal(t, "hamburg", m.ID)

	_, ok = s.MarkerAt(layout.Point{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		width float64
		want  string
	}{
		{"fits", "munich", 118.4, "munich"},
		{"truncated", "a-very-long-site-identifier", 60, "a-very.."},
		{"minimum", "abcdef", 1, "a.."},
		{"unicode", "münchen-süd-rechenzentrum", 60, "münche.."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateLabel(tt.label, tt.width))
		})
	}
}

func TestEscapeXML(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", EscapeXML("a & b <c>"))
}
