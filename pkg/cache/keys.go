package cache

import "github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"

// LayoutKeyOpts are the inputs that determine a layout.
type LayoutKeyOpts struct {
	Width     float64          `json:"width"`
	Height    float64          `json:"height"`
	Items     int              `json:"items"`
	Constants layout.Constants `json:"constants"`
}

// ArtifactKeyOpts are the render inputs beyond the layout and the data.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	LinkBase   string  `json:"link_base,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Thumbnail  int     `json:"thumbnail,omitempty"`
	Script     bool    `json:"script,omitempty"`
	LinkTarget string  `json:"link_target,omitempty"`
	Frame      bool    `json:"frame,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a computed layout.
	LayoutKey(opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered artifact of an overview.
	ArtifactKey(overviewHash string, opts ArtifactKeyOpts) string
	// OverviewKey identifies a loaded overview of a named source.
	OverviewKey(source string) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(overviewHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", overviewHash, opts)
}

// OverviewKey returns "overview:<source>".
func (DefaultKeyer) OverviewKey(source string) string {
	return "overview:" + source
}
