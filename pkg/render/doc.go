// Package render provides format conversion shared by the overview sinks.
//
// [ToPDFContext] converts any SVG to PDF using the external rsvg-convert
// tool (from librsvg). PNG output is drawn natively by the sink package.
//
//	svg := sink.RenderSVG(scene)
//	pdf, err := render.ToPDFContext(ctx, svg)
//
// The hexagon grid itself lives in the [hexgrid] subpackage: [hexgrid/layout]
// computes the geometry, [hexgrid] assembles a scene and [hexgrid/sink]
// writes it out.
//
// [hexgrid]: github.com/matzehuels/siteoverview/pkg/render/hexgrid
// [hexgrid/layout]: github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout
// [hexgrid/sink]: github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink
package render
