package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
)

const markerInteractionCSS = `
    .main_box { cursor: pointer; transition: opacity 0.2s ease; }
    .main_box:hover { opacity: %.1f; }
    .main_box.highlight .outer_line { stroke-width: 3; }
    .label { font-family: sans-serif; font-size: %.0fpx; fill: %s; }
    .title { font-family: sans-serif; font-size: %.0fpx; font-weight: bold; fill: %s; }`

const markerInteractionJS = `
    document.querySelectorAll('.main_box').forEach(el => {
      el.addEventListener('mouseenter', () => el.classList.add('highlight'));
      el.addEventListener('mouseleave', () => el.classList.remove('highlight'));
    });`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	script     bool
	linkTarget string
	frame      bool
}

// WithInteraction embeds a script that highlights the hovered marker.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.script = true } }

// WithLinkTarget sets the target of marker links (default "_top", leaving
// the dashboard frame).
func WithLinkTarget(t string) SVGOption { return func(r *svgRenderer) { r.linkTarget = t } }

// WithFrame draws a border around the panel.
func WithFrame() SVGOption { return func(r *svgRenderer) { r.frame = true } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s hexgrid.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{linkTarget: "_top"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.Width), num(s.Height), s.Width, s.Height)
	fmt.Fprintf(&buf, "  <style>"+markerInteractionCSS+"\n  </style>\n",
		HoverOpacity, hexgrid.LabelFontSize, LabelColor, titleSize, TitleColor)

	if r.frame {
		fmt.Fprintf(&buf, `  <rect class="frame" x="0.5" y="0.5" width="%s" height="%s" fill="none" stroke="#cccccc"/>`+"\n",
			num(max(s.Width-1, 0)), num(max(s.Height-1, 0)))
	}
	if s.Title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%s" y="%s" text-anchor="start">%s</text>`+"\n",
			num(titleLeft(s.Geometry)), num(titleBaseline), hexgrid.EscapeXML(s.Title))
	}

	if s.Geometry != nil {
		outer := hexagonPath(s.Geometry.HexagonRadius)
		inner := hexagonPath(s.Geometry.HexagonRadius / 2)
		for _, m := range s.Markers {
			r.renderMarker(&buf, m, outer, inner)
		}
	}

	if r.script {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", markerInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderMarker(buf *bytes.Buffer, m hexgrid.Marker, outer, inner string) {
	if m.URL != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="%s">`+"\n", hexgrid.EscapeXML(m.URL), hexgrid.EscapeXML(r.linkTarget))
	}

	fmt.Fprintf(buf, `  <g class="main_box" id="site-%s" data-state="%s" transform="translate(%s,%s)">`+"\n",
		hexgrid.EscapeXML(m.ID), m.State, num(m.Box.Left), num(m.Box.Top))
	fmt.Fprintf(buf, `    <title>%s</title>`+"\n", hexgrid.EscapeXML(m.Label))
	fmt.Fprintf(buf, `    <g transform="translate(%s,%s)">`+"\n",
		num(m.Center.X-m.Box.Left), num(m.Center.Y-m.Box.Top))
	fmt.Fprintf(buf, `      <path class="outer_line" d="%s" stroke="%s" fill="none"/>`+"\n", outer, OutlineColor)
	fmt.Fprintf(buf, `      <path class="inner_line" d="%s" fill="%s"/>`+"\n", inner, StateColor(m.State))
	buf.WriteString("    </g>\n")

	if m.ShowLabel {
		fmt.Fprintf(buf, `    <text class="label" x="%s" y="%s" text-anchor="middle">%s</text>`+"\n",
			num(m.LabelAnchor.X-m.Box.Left), num(m.LabelAnchor.Y-m.Box.Top),
			hexgrid.EscapeXML(hexgrid.TruncateLabel(m.Label, m.Box.Width)))
	}
	buf.WriteString("  </g>\n")

	if m.URL != "" {
		buf.WriteString("  </a>\n")
	}
}
