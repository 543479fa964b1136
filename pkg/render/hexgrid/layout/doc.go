// Package layout computes the grid geometry for hexagon site overviews.
//
// # Overview
//
// A site overview tiles an arbitrary number of items as hexagonal markers
// inside a fixed-size panel. Given the panel dimensions and the item count,
// [Compute] searches for a column/row arrangement and a per-item box geometry
// such that:
//
//   - every item fits into the usable drawing area
//   - no two boxes overlap
//   - markers never exceed [Constants].MaxBoxWidth
//   - rows and columns are balanced
//
// The engine is pure: it keeps no state between calls and identical inputs
// always yield identical geometry, so it is safe for concurrent use.
//
// # Column Search
//
// The search starts at the number of maximum-width boxes that fit side by
// side and adds one column at a time until the required box height times the
// row count fits into the usable height. Feasibility is monotonic in the
// column count, so the first accepted candidate is used. The search gives up
// after [MaxColumns] candidates. A count of exactly [MaxColumns] is skipped,
// so wide panels starting beyond it still find their single-row layout.
//
// Once a candidate is accepted the column count is rebalanced to
// ceil(items/rows): the same row count may need fewer, wider columns. The
// hexagon radius and label visibility of the accepted candidate are kept.
//
// # Infeasible Layouts
//
// [Compute] returns an [*InfeasibleError] (matching [ErrInfeasible]) when the
// usable area is smaller than [MinUsableSize] in either dimension or when the
// column search runs out of candidates. Callers are expected to render nothing
// for that cycle.
//
// # Placement
//
// Items are placed in row-major order in the order supplied by the caller:
//
//	g, err := layout.Compute(layout.Request{Width: 600, Height: 300, Items: 5}, layout.DefaultConstants())
//	if err != nil {
//	    return err
//	}
//	for i := 0; i < g.Items; i++ {
//	    p := g.Placement(i) // top-left corner of box i in panel coordinates
//	    c := g.HexagonAt(i) // hexagon center of box i
//	    _, _ = p, c
//	}
package layout
