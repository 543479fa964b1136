// Package hexgrid turns a site overview and a computed grid geometry into a
// renderable scene.
//
// A [Scene] holds one [Marker] per site in caller order: the first site
// occupies the top-left box and the grid fills row by row. Sinks in the
// [sink] subpackage turn a scene into SVG, PNG, PDF, JSON or Graphviz output.
//
// The geometry itself is computed by the [layout] subpackage:
//
//	g, err := layout.Compute(layout.Request{Width: 600, Height: 300, Items: len(ov.Sites)}, layout.DefaultConstants())
//	if err != nil {
//	    scene := hexgrid.Empty(600, 300, ov.Title)
//	    ...
//	}
//	scene := hexgrid.Build(ov, g, sites.LinkBuilder{Base: "view.py?view_name=sitehosts"})
//
// [sink]: github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink
// [layout]: github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout
package hexgrid
