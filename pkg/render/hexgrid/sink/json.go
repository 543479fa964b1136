package sink

import (
	"encoding/json"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
)

type jsonOutput struct {
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Title    string            `json:"title,omitempty"`
	Feasible bool              `json:"feasible"`
	Geometry *layout.Geometry  `json:"geometry,omitempty"`
	Markers  []hexgrid.Marker  `json:"markers"`
	Outline  string            `json:"outline_color"`
	Colors   map[string]string `json:"state_colors"`
}

// RenderJSON exports the scene with its geometry so other renderers can
// draw the same figure.
func RenderJSON(s hexgrid.Scene) ([]byte, error) {
	out := jsonOutput{
		Width:    s.Width,
		Height:   s.Height,
		Title:    s.Title,
		Feasible: s.Feasible(),
		Geometry: s.Geometry,
		Markers:  s.Markers,
		Outline:  OutlineColor,
		Colors:   make(map[string]string, len(stateColors)),
	}
	if out.Markers == nil {
		out.Markers = []hexgrid.Marker{}
	}
	for st, c := range stateColors {
		out.Colors[string(st)] = c
	}
	return json.MarshalIndent(out, "", "  ")
}
