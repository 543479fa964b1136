// Package sink provides output format renderers for site overview scenes.
//
// # Overview
//
// A "sink" transforms a [hexgrid.Scene] into a final output format:
//
//   - SVG: the dashboard figure, with links and hover feedback
//   - PNG: raster output drawn with gg, optionally as a thumbnail
//   - PDF: print output (requires rsvg-convert)
//   - JSON: scene export for external renderers
//   - DOT: Graphviz graph with pinned positions, rendered by neato
//
// # SVG Output
//
// [RenderSVG] draws every marker as a group of class "main_box" translated
// to its box. The group holds an outer hexagon outline, an inner hexagon at
// half the radius filled by site state, and the label when the boxes are
// wide enough. Markers with a URL are wrapped in a link.
//
//	svg := sink.RenderSVG(scene, sink.WithInteraction())
//
// A scene without geometry renders as the empty panel with its title.
//
// # PNG Output
//
// [RenderPNG] paints the same figure with gg, so no external tool is needed:
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2), sink.WithThumbnail(256))
//
// # PDF Output
//
// [RenderPDF] converts the SVG via [render.ToPDFContext]. This requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [hexgrid.Scene]: github.com/matzehuels/siteoverview/pkg/render/hexgrid.Scene
// [render.ToPDFContext]: github.com/matzehuels/siteoverview/pkg/render.ToPDFContext
package sink
