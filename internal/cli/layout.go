package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/siteoverview/pkg/pipeline"
	"github.com/matzehuels/siteoverview/pkg/render/hexgrid/layout"
)

// layoutFlags holds the panel flags shared by layout, render and preview.
type layoutFlags struct {
	width   float64
	height  float64
	title   string
	noCache bool
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "panel width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "panel height in pixels")
	cmd.Flags().StringVar(&f.title, "title", "", "panel title (overrides the source)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

// apply copies the flags the user set over the configured options.
func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("width") {
		opts.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		opts.Height = f.height
	}
	opts.Refresh = f.refresh
}

// layoutCommand creates the layout command for computing the grid geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		items  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [sites.json|sites.toml]",
		Short: "Compute the hexagon grid for a panel size",
		Long: `Compute the hexagon grid for a panel size.

The number of sites comes from the input file, the configured source, or
--items. The command prints the chosen column and row count, the hexagon
radius and the placement of every box. Infeasible sizes exit with an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)

			if !cmd.Flags().Changed("items") {
				n, err := c.countItems(cmd.Context(), argOrEmpty(args), flags.title)
				if err != nil {
					return err
				}
				items = n
			}
			return c.runLayout(cmd.Context(), items, opts, flags.noCache, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&items, "items", "n", 0, "number of sites (skips loading the source)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the geometry as JSON")

	return cmd
}

func (c *CLI) countItems(ctx context.Context, input, title string) (int, error) {
	src, err := c.openSource(ctx, input, title)
	if err != nil {
		return 0, err
	}
	defer src.Close()
	ov, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", src.Name(), err)
	}
	loggerFromContext(ctx).Debug("counted sites", "source", src.Name(), "sites", ov.Items())
	return ov.Items(), nil
}

// runLayout computes the layout and prints it.
func (c *CLI) runLayout(ctx context.Context, items int, opts pipeline.Options, noCache, asJSON bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, cacheHit, err := runner.LayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	printSuccess("Layout %s", opts.Describe())
	printGeometry(g)
	printStats(items, g.Columns*g.Rows, cacheHit)
	printNewline()
	fmt.Println(placementTable(g))
	return nil
}

// placementTable renders one row per box.
func placementTable(g layout.Geometry) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "left", "top", "hex x", "hex y", "label y").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for i := 0; i < g.Items; i++ {
		box := g.Box(i)
		hex := g.HexagonAt(i)
		label := "—"
		if g.ShowLabel {
			label = fmt.Sprintf("%.1f", g.LabelAt(i).Y)
		}
		t.Row(
			strconv.Itoa(i),
			fmt.Sprintf("%.1f", box.Left),
			fmt.Sprintf("%.1f", box.Top),
			fmt.Sprintf("%.1f", hex.X),
			fmt.Sprintf("%.1f", hex.Y),
			label,
		)
	}
	return t.Render()
}
