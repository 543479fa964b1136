package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
)

// pointsPerInch is the Graphviz unit conversion; with inputscale set to it,
// node positions are given in the same pixels as the scene.
const pointsPerInch = 72.0

// ToDOT converts the scene to an undirected Graphviz graph. Every marker
// becomes a hexagon node pinned at its center, so neato reproduces the grid
// instead of computing its own layout. Graphviz puts the origin bottom-left,
// so Y is flipped.
func ToDOT(s hexgrid.Scene) string {
	var buf bytes.Buffer
	buf.WriteString("graph overview {\n")
	fmt.Fprintf(&buf, "  graph [inputscale=%g, notranslate=true, splines=false, outputorder=nodesfirst, bgcolor=\"transparent\"", pointsPerInch)
	if s.Title != "" {
		fmt.Fprintf(&buf, ", label=%q, labelloc=t, fontsize=%g", s.Title, titleSize)
	}
	buf.WriteString("];\n")
	fmt.Fprintf(&buf, "  node [shape=hexagon, orientation=30, fixedsize=true, style=filled, color=%q, fontsize=%g, label=\"\"];\n",
		OutlineColor, hexgrid.LabelFontSize)
	if s.Geometry != nil && s.Geometry.ShowLabel {
		buf.WriteString("  forcelabels=true;\n")
	}
	buf.WriteString("\n")

	for _, m := range s.Markers {
		size := 2 * m.Radius / pointsPerInch
		attrs := fmt.Sprintf("pos=\"%s,%s!\", width=%s, height=%s, fillcolor=%q",
			num(m.Center.X), num(s.Height-m.Center.Y), num(size), num(size), StateColor(m.State))
		if m.ShowLabel {
			attrs += fmt.Sprintf(", xlabel=%q", hexgrid.TruncateLabel(m.Label, m.Box.Width))
		}
		if m.URL != "" {
			attrs += fmt.Sprintf(", URL=%q, target=\"_top\"", m.URL)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", m.ID, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderGraphviz lays out the DOT of the scene with neato and renders it to
// SVG.
func RenderGraphviz(ctx context.Context, s hexgrid.Scene) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(ToDOT(s)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element so the output scales
// like the native SVG sink.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
