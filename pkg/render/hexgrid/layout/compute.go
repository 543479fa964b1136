package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInfeasible is matched by every error [Compute] returns.
var ErrInfeasible = errors.New("layout infeasible")

// Reason tells why no geometry could be found.
type Reason int

const (
	// ReasonAreaTooSmall means the usable area is below [MinUsableSize].
	ReasonAreaTooSmall Reason = iota + 1
	// ReasonColumnLimit means the column search ran out of candidates.
	ReasonColumnLimit
)

func (r Reason) String() string {
	switch r {
	case ReasonAreaTooSmall:
		return "area too small"
	case ReasonColumnLimit:
		return "column limit reached"
	default:
		return "unknown"
	}
}

// InfeasibleError describes a failed layout request.
type InfeasibleError struct {
	Reason  Reason
	Request Request
	Columns int // first column count not tried, zero for ReasonAreaTooSmall
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("layout infeasible: %s (%gx%g, %d items)",
		e.Reason, e.Request.Width, e.Request.Height, e.Request.Items)
}

// Unwrap makes errors.Is(err, ErrInfeasible) hold.
func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

// Request is the input of one layout computation.
type Request struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Items  int     `json:"items"`
}

// Compute finds the placement geometry for req. It returns an
// [*InfeasibleError] when the usable area is too small or none of the
// [MaxColumns] column counts from the starting candidate fits all items.
func Compute(req Request, c Constants) (Geometry, error) {
	area := c.BoxArea(req.Width, req.Height)
	if area.Width < MinUsableSize || area.Height < MinUsableSize {
		return Geometry{}, &InfeasibleError{Reason: ReasonAreaTooSmall, Request: req}
	}
	items := max(req.Items, 0)

	start := max(int(math.Floor(area.Width/c.MaxBoxWidth)), 1)
	limit := start + MaxColumns
	for cols := start; cols < limit; cols++ {
		if cols == MaxColumns {
			continue
		}
		if g, ok := candidate(area, items, cols, c); ok {
			g.Width, g.Height = req.Width, req.Height
			return g, nil
		}
	}
	return Geometry{}, &InfeasibleError{Reason: ReasonColumnLimit, Request: req, Columns: limit}
}

// candidate evaluates one column count and returns the rebalanced geometry
// when all rows fit.
func candidate(area Rect, items, cols int, c Constants) (Geometry, bool) {
	rows := ceilDiv(items, cols)
	boxWidth := area.Width / float64(cols)

	radius := math.Min(boxWidth/2, c.MaxHexagonRadius())
	radius -= radius * c.BoxHorizontalPadding

	required := radius * 2 * (1 + c.BoxVerticalPadding)
	showLabel := boxWidth >= c.MinLabelWidth
	if showLabel {
		required += 2*c.LabelVerticalPadding + c.LabelHeight
	}

	if required*float64(rows) > area.Height {
		return Geometry{}, false
	}

	boxHeight := area.Height / float64(max(rows, 1))
	centerTop := radius*(1+c.BoxVerticalPadding) + (boxHeight-required)/2

	// Fewer columns may cover the same number of rows. Radius and label
	// visibility stay those of the accepted candidate.
	if rows > 0 {
		cols = ceilDiv(items, rows)
	}
	boxWidth = area.Width / float64(cols)

	g := Geometry{
		Columns:           cols,
		Rows:              rows,
		Items:             items,
		BoxWidth:          boxWidth,
		BoxHeight:         boxHeight,
		RequiredBoxHeight: required,
		HexagonRadius:     radius,
		HexagonCenter:     Point{X: boxWidth / 2, Y: centerTop},
		ShowLabel:         showLabel,
		Area:              area,
	}
	if showLabel {
		g.LabelBaseline = centerTop + radius + c.LabelHeight + c.LabelVerticalPadding
		g.LabelCenter = boxWidth / 2
	}
	return g, true
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
