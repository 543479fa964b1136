package sink

import (
	"bytes"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	thumbnail  int
	background string
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithThumbnail downsizes the image to fit a size x size square.
func WithThumbnail(size int) PNGOption {
	return func(r *pngRenderer) { r.thumbnail = size }
}

// WithBackground sets the background color (default white).
func WithBackground(hex string) PNGOption {
	return func(r *pngRenderer) { r.background = hex }
}

// RenderPNG paints the scene into a PNG image.
func RenderPNG(s hexgrid.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	img := r.paint(s)
	if r.thumbnail > 0 {
		img = imaging.Fit(img, r.thumbnail, r.thumbnail, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r pngRenderer) paint(s hexgrid.Scene) image.Image {
	w := max(int(math.Ceil(s.Width*r.scale)), 1)
	h := max(int(math.Ceil(s.Height*r.scale)), 1)

	dc := gg.NewContext(w, h)
	dc.SetHexColor(r.background)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	if s.Title != "" {
		dc.SetHexColor(TitleColor)
		dc.DrawStringAnchored(s.Title, titleLeft(s.Geometry), titleBaseline, 0, 0)
	}

	if s.Geometry == nil {
		return dc.Image()
	}

	for _, m := range s.Markers {
		drawHexagon(dc, m.Center, m.Radius)
		dc.SetHexColor(OutlineColor)
		dc.SetLineWidth(1)
		dc.Stroke()

		drawHexagon(dc, m.Center, m.Radius/2)
		dc.SetHexColor(StateColor(m.State))
		dc.Fill()

		if m.ShowLabel {
			dc.SetHexColor(LabelColor)
			dc.DrawStringAnchored(hexgrid.TruncateLabel(m.Label, m.Box.Width), m.LabelAnchor.X, m.LabelAnchor.Y, 0.5, 0)
		}
	}
	return dc.Image()
}

func drawHexagon(dc *gg.Context, center layout.Point, radius float64) {
	dc.NewSubPath()
	for i, p := range layout.HexagonVertices(center, radius) {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
			continue
		}
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
}
