package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/siteoverview/pkg/pipeline"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/sink"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Pixel size of one terminal cell in the preview.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

var (
	previewTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewOutlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(sink.OutlineColor))
	previewLabelStyle   = lipgloss.NewStyle().Foreground(colorGray)
	previewStatusStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "preview [sites.json|sites.toml]",
		Short: "Preview the grid in the terminal",
		Long: `Preview the grid in the terminal.

The terminal stands in for the panel: every cell counts as 8×16 pixels and
the grid is laid out again whenever the window is resized. Press r to reload
the sites and q to quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, err := c.openSource(ctx, argOrEmpty(args), title)
			if err != nil {
				return err
			}
			defer src.Close()

			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			ov, err := src.Load(ctx)
			if err != nil {
				return fmt.Errorf("load %s: %w", src.Name(), err)
			}

			m := newPreviewModel(ov, opts, func() (sites.Overview, error) { return src.Load(ctx) })
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "panel title (overrides the source)")
	return cmd
}

// loadedMsg carries a reloaded overview.
type loadedMsg struct {
	ov  sites.Overview
	err error
}

// previewModel is the bubbletea model of the preview.
type previewModel struct {
	ov     sites.Overview
	opts   pipeline.Options
	reload func() (sites.Overview, error)

	cols, rows int
	scene      hexgrid.Scene
	err        error
}

func newPreviewModel(ov sites.Overview, opts pipeline.Options, reload func() (sites.Overview, error)) previewModel {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	return previewModel{ov: ov, opts: opts, reload: reload}
}

func (m previewModel) Init() tea.Cmd { return nil }

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			if m.reload == nil {
				return m, nil
			}
			reload := m.reload
			return m, func() tea.Msg {
				ov, err := reload()
				return loadedMsg{ov: ov, err: err}
			}
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.relayout()
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.ov = msg.ov
		m.relayout()
	}
	return m, nil
}

// relayout fits the grid to the terminal minus the status line.
func (m *previewModel) relayout() {
	m.opts.Width = float64(m.cols) * cellWidth
	m.opts.Height = float64(max(m.rows-1, 0)) * cellHeight

	g, err := pipeline.ComputeLayout(m.ov.Items(), m.opts)
	if err != nil {
		m.err = err
		m.scene = pipeline.BuildScene(m.ov, nil, m.opts)
		return
	}
	m.err = nil
	m.scene = pipeline.BuildScene(m.ov, &g, m.opts)
}

func (m previewModel) View() string {
	if m.cols <= 0 || m.rows <= 1 {
		return ""
	}
	c := newCanvas(m.cols, m.rows-1)

	title := m.scene.Title
	if title == "" {
		title = m.ov.Title
	}
	c.text(0, 1, title, previewTitleStyle)

	for _, mk := range m.scene.Markers {
		c.hexagon(mk)
		if mk.ShowLabel {
			boxCells := int(mk.Box.Width / cellWidth)
			label := []rune(mk.Label)
			if len(label) > boxCells {
				label = label[:max(boxCells, 0)]
			}
			col := int(mk.LabelAnchor.X/cellWidth) - len(label)/2
			c.text(int(mk.LabelAnchor.Y/cellHeight), col, string(label), previewLabelStyle)
		}
	}

	return c.String() + "\n" + previewStatusStyle.Render(m.status())
}

func (m previewModel) status() string {
	size := fmt.Sprintf("%g×%gpx", m.opts.Width, m.opts.Height)
	switch {
	case m.err != nil && pipeline.IsInfeasible(m.err):
		return fmt.Sprintf("%d sites do not fit %s · r reload · q quit", m.ov.Items(), size)
	case m.err != nil:
		return m.err.Error()
	case m.scene.Geometry == nil:
		return size
	}
	g := m.scene.Geometry
	return fmt.Sprintf("%d×%d grid · radius %.1f · %s · r reload · q quit", g.Columns, g.Rows, g.HexagonRadius, size)
}

// canvas is a grid of terminal cells, each holding one styled glyph.
type canvas struct {
	cells [][]string
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cells: make([][]string, rows)}
	for r := range c.cells {
		c.cells[r] = make([]string, cols)
		for i := range c.cells[r] {
			c.cells[r][i] = " "
		}
	}
	return c
}

func (c *canvas) set(row, col int, s string) {
	if row < 0 || row >= len(c.cells) || col < 0 || col >= len(c.cells[row]) {
		return
	}
	c.cells[row][col] = s
}

func (c *canvas) text(row, col int, s string, style lipgloss.Style) {
	for i, r := range []rune(s) {
		c.set(row, col+i, style.Render(string(r)))
	}
}

// hexagon shades every cell whose center lies in the marker's hexagon. The
// inner half is filled with the state color. Markers smaller than a cell
// become a single glyph.
func (c *canvas) hexagon(mk hexgrid.Marker) {
	fill := stateStyle(mk.State)
	if mk.Radius < cellWidth {
		c.set(int(mk.Center.Y/cellHeight), int(mk.Center.X/cellWidth), fill.Render("⬢"))
		return
	}
	top := int((mk.Center.Y - mk.Radius) / cellHeight)
	bottom := int((mk.Center.Y + mk.Radius) / cellHeight)
	left := int((mk.Center.X - mk.Radius) / cellWidth)
	right := int((mk.Center.X + mk.Radius) / cellWidth)
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			p := layout.Point{X: (float64(col) + 0.5) * cellWidth, Y: (float64(row) + 0.5) * cellHeight}
			switch {
			case hexContains(mk.Center, mk.Radius/2, p):
				c.set(row, col, fill.Render("█"))
			case hexContains(mk.Center, mk.Radius, p):
				c.set(row, col, previewOutlineStyle.Render("░"))
			}
		}
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// hexContains reports whether p lies in the pointy-top hexagon of radius r
// around center.
func hexContains(center layout.Point, r float64, p layout.Point) bool {
	dx := math.Abs(p.X - center.X)
	dy := math.Abs(p.Y - center.Y)
	if dx > r*math.Sqrt(3)/2 {
		return false
	}
	return dy <= r-dx/math.Sqrt(3)
}

var _ tea.Model = previewModel{}
