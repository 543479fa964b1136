package layout

const (
	// MinUsableSize is the smallest usable width or height (in user units)
	// for which a layout is attempted.
	MinUsableSize = 20.0

	// MaxColumns is the number of column counts the search tries before
	// failing with [ReasonColumnLimit]. A count of exactly MaxColumns is
	// always rejected.
	MaxColumns = 100
)

// Constants are the deployment-time sizing parameters of a site overview.
// They are not derived from data and do not change between layout requests.
type Constants struct {
	// MaxBoxWidth caps the width of a box. The hexagon radius never exceeds
	// half of it.
	MaxBoxWidth float64 `json:"max_box_width" mapstructure:"max_box_width"`
	// BoxVerticalPadding is the vertical padding relative to the hexagon
	// diameter.
	BoxVerticalPadding float64 `json:"box_vertical_padding" mapstructure:"box_vertical_padding"`
	// BoxHorizontalPadding shrinks the hexagon radius by this fraction.
	BoxHorizontalPadding float64 `json:"box_horizontal_padding" mapstructure:"box_horizontal_padding"`
	// MinLabelWidth is the smallest box width that still shows a label.
	MinLabelWidth float64 `json:"min_label_width" mapstructure:"min_label_width"`
	// LabelHeight is the effective rendered height of a label.
	LabelHeight float64 `json:"label_height" mapstructure:"label_height"`
	// LabelVerticalPadding is applied above and below a label.
	LabelVerticalPadding float64 `json:"label_vertical_padding" mapstructure:"label_vertical_padding"`
	// AreaVerticalPadding separates the box area from the header and the
	// bottom border.
	AreaVerticalPadding float64 `json:"area_vertical_padding" mapstructure:"area_vertical_padding"`
	// AreaHorizontalPadding separates the box area from the side borders.
	AreaHorizontalPadding float64 `json:"area_horizontal_padding" mapstructure:"area_horizontal_padding"`
	// HeaderHeight is reserved at the top of the panel for the title.
	HeaderHeight float64 `json:"header_height" mapstructure:"header_height"`
}

// DefaultConstants returns the sizing used by the dashboard figure. The
// maximum box width matches the host/service statistics hexagons.
func DefaultConstants() Constants {
	return Constants{
		MaxBoxWidth:           114,
		BoxVerticalPadding:    0.05,
		BoxHorizontalPadding:  0,
		MinLabelWidth:         60,
		LabelHeight:           11,
		LabelVerticalPadding:  8,
		AreaVerticalPadding:   10,
		AreaHorizontalPadding: 4,
		HeaderHeight:          24,
	}
}

// MaxHexagonRadius returns the largest radius a marker may have.
func (c Constants) MaxHexagonRadius() float64 { return c.MaxBoxWidth / 2 }

// BoxArea returns the usable drawing area of a width×height panel.
func (c Constants) BoxArea(width, height float64) Rect {
	top := c.HeaderHeight + c.AreaVerticalPadding
	return Rect{
		Left:   c.AreaHorizontalPadding,
		Top:    top,
		Width:  width - 2*c.AreaHorizontalPadding,
		Height: height - top - c.AreaVerticalPadding,
	}
}
