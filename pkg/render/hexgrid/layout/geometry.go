package layout

import "math"

// Point is a position in panel coordinates (origin top-left, Y down).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Rect is an axis-aligned rectangle.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{X: r.Left, Y: r.Top} }

// Contains reports whether p lies inside r (edges inclusive on the top-left,
// exclusive on the bottom-right so adjacent boxes never both claim a point).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Geometry is the placement geometry of one successful layout.
type Geometry struct {
	// Width and Height are the panel size the geometry was computed for.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Columns int `json:"columns"`
	Rows    int `json:"rows"`
	Items   int `json:"items"`

	BoxWidth  float64 `json:"box_width"`
	BoxHeight float64 `json:"box_height"`

	// RequiredBoxHeight is the height the hexagon and optional label need.
	// BoxHeight is at least this; the difference is split above and below.
	RequiredBoxHeight float64 `json:"required_box_height"`

	HexagonRadius float64 `json:"hexagon_radius"`
	// HexagonCenter is the hexagon center relative to the box's top-left.
	HexagonCenter Point `json:"hexagon_center"`

	ShowLabel bool `json:"show_label"`
	// LabelBaseline is the label baseline relative to the box top.
	LabelBaseline float64 `json:"label_baseline,omitempty"`
	// LabelCenter is the horizontal label center relative to the box left.
	LabelCenter float64 `json:"label_center,omitempty"`

	// Area is the usable drawing area the boxes are placed in.
	Area Rect `json:"area"`
}

// Offset returns the top-left corner of box i relative to the area origin.
// i must be in [0, Items); other values produce positions outside the grid.
func (g Geometry) Offset(i int) Point {
	cols := max(g.Columns, 1)
	return Point{
		X: float64(i%cols) * g.BoxWidth,
		Y: float64(i/cols) * g.BoxHeight,
	}
}

// Placement returns the top-left corner of box i in panel coordinates.
func (g Geometry) Placement(i int) Point {
	return g.Offset(i).Add(g.Area.Origin())
}

// Placements returns the placement of every item in caller order.
func (g Geometry) Placements() []Point {
	out := make([]Point, g.Items)
	for i := range out {
		out[i] = g.Placement(i)
	}
	return out
}

// Box returns the bounding box of item i, suitable for hit-testing.
func (g Geometry) Box(i int) Rect {
	p := g.Placement(i)
	return Rect{Left: p.X, Top: p.Y, Width: g.BoxWidth, Height: g.BoxHeight}
}

// HexagonAt returns the hexagon center of item i in panel coordinates.
func (g Geometry) HexagonAt(i int) Point {
	return g.Placement(i).Add(g.HexagonCenter)
}

// LabelAt returns the label anchor (horizontal center, baseline) of item i.
func (g Geometry) LabelAt(i int) Point {
	return g.Placement(i).Add(Point{X: g.LabelCenter, Y: g.LabelBaseline})
}

// Hit returns the index of the box containing p, or -1.
func (g Geometry) Hit(p Point) int {
	if g.Items == 0 || g.BoxWidth <= 0 || g.BoxHeight <= 0 {
		return -1
	}
	rel := Point{X: p.X - g.Area.Left, Y: p.Y - g.Area.Top}
	if rel.X < 0 || rel.Y < 0 {
		return -1
	}
	col := int(rel.X / g.BoxWidth)
	row := int(rel.Y / g.BoxHeight)
	if col >= g.Columns {
		return -1
	}
	i := row*g.Columns + col
	if i >= g.Items {
		return -1
	}
	return i
}

// GridHeight returns the height covered by all rows.
func (g Geometry) GridHeight() float64 { return float64(g.Rows) * g.BoxHeight }

// HexagonVertices returns the six corners of a pointy-top hexagon, starting
// at the top and going clockwise.
func HexagonVertices(center Point, radius float64) []Point {
	pts := make([]Point, 6)
	for k := range pts {
		a := float64(k) * math.Pi / 3
		pts[k] = Point{
			X: center.X + radius*math.Sin(a),
			Y: center.Y - radius*math.Cos(a),
		}
	}
	return pts
}
