// Package pipeline provides the load → layout → render pipeline of the site
// overview.
//
// The CLI and the HTTP server both run overviews through a [Runner] so they
// share defaults, validation and caching.
//
// # Stages
//
//  1. Load: read the overview from a [source.Source]
//  2. Layout: compute the hexagon grid for the number of drawn sites
//  3. Render: build the scene and write every requested format
//
// A layout that cannot fit the panel is not an error for the pipeline: the
// panel is rendered empty with its title, as the dashboard does.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, src, pipeline.Options{
//	    Width:   600,
//	    Height:  300,
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// [source.Source]: github.com/matzehuels/siteoverview/pkg/sites/source.Source
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default panel width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default panel height in pixels.
	DefaultHeight = 600.0

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// MaxThumbnail bounds the thumbnail edge length.
	MaxThumbnail = 4096
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatGraphviz: true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatPNG:      "image/png",
	FormatPDF:      "application/pdf",
	FormatJSON:     "application/json",
	FormatDOT:      "text/vnd.graphviz",
	FormatGraphviz: "image/svg+xml",
}

// FileExtensions maps formats to output file extensions.
var FileExtensions = map[string]string{
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatPDF:      ".pdf",
	FormatJSON:     ".json",
	FormatDOT:      ".dot",
	FormatGraphviz: ".gv.svg",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width     float64          `json:"width,omitempty"`
	Height    float64          `json:"height,omitempty"`
	Constants layout.Constants `json:"constants"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	LinkBase    string   `json:"link_base,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Thumbnail   int      `json:"thumbnail,omitempty"`
	Interaction bool     `json:"interaction,omitempty"`
	LinkTarget  string   `json:"link_target,omitempty"`
	Frame       bool     `json:"frame,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Overview is the loaded data.
	Overview sites.Overview

	// OverviewHash is the content hash of the overview.
	OverviewHash string

	// Geometry is nil when the layout was infeasible.
	Geometry *layout.Geometry

	// Infeasible holds the layout error when the panel was rendered empty.
	Infeasible error

	// Scene is what the sinks rendered.
	Scene hexgrid.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sites      int
	Items      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the overview came from cache
	LayoutHit bool // Whether the geometry came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Constants == (layout.Constants{}) {
		o.Constants = layout.DefaultConstants()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates the panel size.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return errors.ValidateDimensions(o.Width, o.Height)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Thumbnail < 0 || o.Thumbnail > MaxThumbnail {
		return errors.New(errors.ErrCodeInvalidInput, "thumbnail must be between 0 and %d, got %d", MaxThumbnail, o.Thumbnail)
	}
	if o.LinkBase != "" {
		if err := errors.ValidateURL(o.LinkBase); err != nil {
			return err
		}
	}
	if strings.ContainsAny(o.LinkTarget, " \t\n\"'<>&") {
		return errors.New(errors.ErrCodeInvalidInput, "link target must be a frame name such as _top or _blank, got %q", o.LinkTarget)
	}
	return nil
}

// Request returns the layout request for the given number of items.
func (o *Options) Request(items int) layout.Request {
	return layout.Request{Width: o.Width, Height: o.Height, Items: items}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(items int) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:     o.Width,
		Height:    o.Height,
		Items:     items,
		Constants: o.Constants,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		LinkBase:   o.LinkBase,
		Scale:      o.Scale,
		Thumbnail:  o.Thumbnail,
		Script:     o.Interaction,
		LinkTarget: o.LinkTarget,
		Frame:      o.Frame,
	}
}

// Describe returns a short description for log lines.
func (o *Options) Describe() string {
	return fmt.Sprintf("%gx%g %s", o.Width, o.Height, strings.Join(o.Formats, ","))
}

// Clone returns an independent copy that is validated again on next use.
func (o Options) Clone() Options {
	o.Formats = slices.Clone(o.Formats)
	o.validated = false
	return o
}
