package sink

import (
	"fmt"
	"strings"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Colors of the figure.
const (
	OutlineColor = "#13d389"
	TitleColor   = "#212121"
	LabelColor   = "#212121"
	HoverOpacity = 0.8

	titleSize     = 12.0
	titleBaseline = 18.0
)

var stateColors = map[sites.State]string{
	sites.StateOK:       "#13d389",
	sites.StateDowntime: "#23adff",
	sites.StateWarning:  "#ffd703",
	sites.StateCritical: "#ff3232",
}

// StateColor returns the inner hexagon fill for a site state.
func StateColor(s sites.State) string {
	if c, ok := stateColors[s]; ok {
		return c
	}
	return stateColors[sites.StateOK]
}

// titleLeft returns the x of the left-aligned title, flush with the box area.
func titleLeft(g *layout.Geometry) float64 {
	if g != nil {
		return g.Area.Left
	}
	return layout.DefaultConstants().AreaHorizontalPadding
}

// hexagonPath returns an SVG path for a hexagon of radius r around the
// origin.
func hexagonPath(r float64) string {
	var sb strings.Builder
	for i, p := range layout.HexagonVertices(layout.Point{}, r) {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%s,%s", cmd, num(p.X), num(p.Y))
	}
	sb.WriteString("Z")
	return sb.String()
}

// num formats a coordinate with two decimals, dropping "-0.00".
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	if s == "-0.00" {
		return "0.00"
	}
	return s
}
