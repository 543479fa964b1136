// Package pkg provides the core libraries for the siteoverview dashboard panel.
//
// # Overview
//
// Siteoverview draws every monitored site as a hexagon on a panel of arbitrary
// size. The grid picks the column count that yields the largest hexagons that
// still fit, and the hexagon's inner fill shows the site's worst state. The pkg
// directory is organized into these areas:
//
//  1. [sites] - Site data, state derivation and inventory files
//  2. [render/hexgrid/layout] - The adaptive grid layout engine
//  3. [render/hexgrid] and [render/hexgrid/sink] - Scenes and output formats
//  4. [pipeline] - Orchestration (load → layout → render)
//  5. [cache], [errors], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	File / MongoDB
//	      ↓
//	 [sites/source] package (load the overview)
//	      ↓
//	 [render/hexgrid/layout] package (columns, rows, radius, placements)
//	      ↓
//	 [render/hexgrid] package (scene: markers with boxes, labels and links)
//	      ↓
//	 SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/siteoverview/pkg/render/hexgrid"
//	    "github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
//	    "github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink"
//	    "github.com/matzehuels/siteoverview/pkg/sites"
//	)
//
//	// 1. Load sites
//	ov, _ := sites.ReadFile("sites.json")
//
//	// 2. Compute layout
//	g, err := layout.Compute(layout.Request{Width: 600, Height: 300, Items: ov.Items()},
//	    layout.DefaultConstants())
//	if errors.Is(err, layout.ErrInfeasible) {
//	    // render the empty panel
//	}
//
//	// 3. Build the scene and render
//	scene := hexgrid.Build(ov, g, sites.LinkBuilder{Base: "view.py"})
//	svg := sink.RenderSVG(scene)
//
// # Main Packages
//
// [render/hexgrid/layout] is dependency-free: it only knows panel sizes, item
// counts and the sizing constants. Everything about sites lives above it.
//
// [render/hexgrid/sink] writes a scene as SVG (the dashboard markup), PNG
// (fogleman/gg, thumbnails via disintegration/imaging), PDF (rsvg-convert),
// JSON, DOT and Graphviz SVG (goccy/go-graphviz, neato with pinned nodes).
//
// [sites/source] loads overviews from inventory files or a MongoDB collection.
//
// [pipeline] is the single entry point used by the CLI and the HTTP server.
// [pipeline.Runner] caches layouts and artifacts in any [cache.Cache]: files
// for the CLI, Redis for shared deployments.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                     # All tests
//	go test ./pkg/render/hexgrid/layout/...           # Layout engine only
//	SITEOVERVIEW_TEST_MONGO_URI=mongodb://localhost go test ./pkg/sites/source/
//
// [sites]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/sites
// [sites/source]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/sites/source
// [render/hexgrid]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/render/hexgrid
// [render/hexgrid/layout]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout
// [render/hexgrid/sink]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/cache#Cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/siteoverview/pkg/observability
package pkg
