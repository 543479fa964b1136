package hexgrid

import (
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Scene is everything a sink needs to draw one overview panel.
type Scene struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Title   string   `json:"title,omitempty"`
	Markers []Marker `json:"markers"`
	// Geometry is nil when no layout could be found; the panel then shows
	// only its frame and title.
	Geometry *layout.Geometry `json:"geometry,omitempty"`
}

// Marker is one hexagon with its label and link.
type Marker struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	URL   string      `json:"url,omitempty"`
	State sites.State `json:"state"`

	Box       layout.Rect  `json:"box"`
	Center    layout.Point `json:"center"`
	Radius    float64      `json:"radius"`
	ShowLabel bool         `json:"show_label"`
	// LabelAnchor is the label's horizontal center and baseline.
	LabelAnchor layout.Point `json:"label_anchor"`
}

// Linker builds the navigation target of a site.
type Linker interface {
	URL(s sites.Site) string
}

// Build places every drawable site of ov in the boxes of g. Sites beyond
// g.Items are dropped, as are all sites in host mode.
func Build(ov sites.Overview, g layout.Geometry, links Linker) Scene {
	s := Scene{
		Width:    g.Width,
		Height:   g.Height,
		Title:    ov.Title,
		Geometry: &g,
	}

	n := min(ov.Items(), g.Items)
	s.Markers = make([]Marker, 0, n)
	for i := 0; i < n; i++ {
		site := ov.Sites[i]
		m := Marker{
			ID:          site.ID,
			Label:       site.DisplayTitle(),
			State:       site.State(),
			Box:         g.Box(i),
			Center:      g.HexagonAt(i),
			Radius:      g.HexagonRadius,
			ShowLabel:   g.ShowLabel,
			LabelAnchor: g.LabelAt(i),
		}
		if links != nil {
			m.URL = links.URL(site)
		}
		s.Markers = append(s.Markers, m)
	}
	return s
}

// Empty returns a scene without markers.
func Empty(width, height float64, title string) Scene {
	return Scene{Width: width, Height: height, Title: title, Markers: []Marker{}}
}

// Feasible reports whether the scene carries a layout.
func (s Scene) Feasible() bool { return s.Geometry != nil }

// MarkerAt returns the marker whose box contains p.
func (s Scene) MarkerAt(p layout.Point) (Marker, bool) {
	if s.Geometry == nil {
		return Marker{}, false
	}
	i := s.Geometry.Hit(p)
	if i < 0 || i >= len(s.Markers) {
		return Marker{}, false
	}
	return s.Markers[i], true
}
