package layout

import (
	"math"
	"testing"
)

func TestGeometryPlacementRowMajor(t *testing.T) {
	g := Geometry{
		Columns:   3,
		Rows:      2,
		Items:     5,
		BoxWidth:  100,
		BoxHeight: 50,
		Area:      Rect{Left: 4, Top: 34, Width: 300, Height: 100},
	}

	tests := []struct {
		index int
		want  Point
	}{
		{0, Point{4, 34}},
		{1, Point{104, 34}},
		{2, Point{204, 34}},
		{3, Point{4, 84}},
		{4, Point{104, 84}},
	}

	for _, tt := range tests {
		if got := g.Placement(tt.index); got != tt.want {
			t.Errorf("Placement(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}

	if got := g.Offset(4); got != (Point{100, 50}) {
		t.Errorf("Offset(4) = %v, want {100 50}", got)
	}

	all := g.Placements()
	if len(all) != 5 {
		t.Fatalf("Placements() len = %d, want 5", len(all))
	}
	for i, p := range all {
		if p != tests[i].want {
			t.Errorf("Placements()[%d] = %v, want %v", i, p, tests[i].want)
		}
	}
}

func TestGeometryBoxAndAnchors(t *testing.T) {
	g := Geometry{
		Columns:       2,
		Rows:          1,
		Items:         2,
		BoxWidth:      80,
		BoxHeight:     120,
		HexagonRadius: 30,
		HexagonCenter: Point{40, 50},
		ShowLabel:     true,
		LabelBaseline: 99,
		LabelCenter:   40,
		Area:          Rect{Left: 10, Top: 20, Width: 160, Height: 120},
	}

	box := g.Box(1)
	if box != (Rect{Left: 90, Top: 20, Width: 80, Height: 120}) {
		t.Errorf("Box(1) = %+v", box)
	}
	if got := g.HexagonAt(1); got != (Point{130, 70}) {
		t.Errorf("HexagonAt(1) = %v, want {130 70}", got)
	}
	if got := g.LabelAt(0); got != (Point{50, 119}) {
		t.Errorf("LabelAt(0) = %v, want {50 119}", got)
	}
}

func TestGeometryHit(t *testing.T) {
	g := Geometry{
		Columns:   3,
		Rows:      2,
		Items:     5,
		BoxWidth:  100,
		BoxHeight: 50,
		Area:      Rect{Left: 0, Top: 30, Width: 300, Height: 100},
	}

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"first box", Point{10, 35}, 0},
		{"third box", Point{250, 79}, 2},
		{"second row", Point{150, 100}, 4},
		{"empty slot", Point{250, 100}, -1},
		{"header", Point{10, 10}, -1},
		{"right of grid", Point{301, 40}, -1},
		{"left of grid", Point{-1, 40}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Hit(tt.p); got != tt.want {
				t.Errorf("Hit(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}

	if (Geometry{}).Hit(Point{1, 1}) != -1 {
		t.Error("Hit on empty geometry should miss")
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	if !r.Contains(Point{0, 0}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(Point{10, 5}) {
		t.Error("right edge should be outside")
	}
	if r.Contains(Point{5, 10}) {
		t.Error("bottom edge should be outside")
	}
}

func TestHexagonVertices(t *testing.T) {
	c := Point{100, 100}
	pts := HexagonVertices(c, 10)
	if len(pts) != 6 {
		t.Fatalf("got %d vertices, want 6", len(pts))
	}

	near := func(a, b Point) bool {
		return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
	}
	if !near(pts[0], Point{100, 90}) {
		t.Errorf("top vertex = %v, want {100 90}", pts[0])
	}
	if !near(pts[3], Point{100, 110}) {
		t.Errorf("bottom vertex = %v, want {100 110}", pts[3])
	}
	for i, p := range pts {
		if d := math.Hypot(p.X-c.X, p.Y-c.Y); math.Abs(d-10) > 1e-9 {
			t.Errorf("vertex %d at distance %v, want 10", i, d)
		}
	}
}
