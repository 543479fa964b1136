package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/render"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// BuildScene assembles the scene for ov. A nil geometry yields the empty
// panel.
func BuildScene(ov sites.Overview, g *layout.Geometry, opts Options) hexgrid.Scene {
	if g == nil {
		return hexgrid.Empty(opts.Width, opts.Height, ov.Title)
	}
	return hexgrid.Build(ov, *g, sites.LinkBuilder{Base: opts.LinkBase})
}

// RenderScene writes the scene in every requested format.
func RenderScene(ctx context.Context, s hexgrid.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, s, format, opts)
		if stderrors.Is(err, render.ErrConverterMissing) {
			return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s output needs rsvg-convert", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, s hexgrid.Scene, format string, opts Options) ([]byte, error) {
	svgOpts := svgOptions(opts)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithScale(opts.Scale), sink.WithThumbnail(opts.Thumbnail))
	case FormatPDF:
		return sink.RenderPDF(s, sink.WithPDFContext(ctx), sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sink.RenderJSON(s)
	case FormatDOT:
		return []byte(sink.ToDOT(s)), nil
	case FormatGraphviz:
		return sink.RenderGraphviz(ctx, s)
	default:
		return nil, ValidateFormat(format)
	}
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Interaction {
		out = append(out, sink.WithInteraction())
	}
	if opts.LinkTarget != "" {
		out = append(out, sink.WithLinkTarget(opts.LinkTarget))
	}
	if opts.Frame {
		out = append(out, sink.WithFrame())
	}
	return out
}
