package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/siteoverview/pkg/pipeline"
)

// defaultOutputBase names outputs when neither -o nor an input file is given.
const defaultOutputBase = "overview"

// renderFlags holds the render-only flags.
type renderFlags struct {
	output      string
	formats     string
	linkBase    string
	scale       float64
	thumbnail   int
	interaction bool
	linkTarget  string
	frame       bool
}

// renderCommand creates the render command for writing the overview to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags layoutFlags
		rf    renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [sites.json|sites.toml]",
		Short: "Render the site overview to SVG, PNG, PDF, JSON or Graphviz",
		Long: `Render the site overview to one or more files.

Sites come from the input file or the configured source. One file is written
per format, named after -o (or the input) with the format's extension.

When the sites do not fit the panel, the panel is written with its title
only and a warning is printed.

Results are cached; --refresh recomputes them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			flags.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), argOrEmpty(args), flags, rf.output, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output base path (extension is replaced per format)")
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().StringVar(&rf.linkBase, "link-base", "", "base URL for site links, e.g. view.py?view_name=sites")
	cmd.Flags().Float64Var(&rf.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().IntVar(&rf.thumbnail, "thumbnail", 0, "fit PNG output into a square of this many pixels")
	cmd.Flags().BoolVar(&rf.interaction, "interaction", false, "embed the hover script in SVG output")
	cmd.Flags().StringVar(&rf.linkTarget, "link-target", "", `frame that site links open in (default "_top")`)
	cmd.Flags().BoolVar(&rf.frame, "frame", false, "draw a border around the panel")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	if cmd.Flags().Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if cmd.Flags().Changed("link-base") {
		opts.LinkBase = f.linkBase
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = f.scale
	}
	if cmd.Flags().Changed("thumbnail") {
		opts.Thumbnail = f.thumbnail
	}
	if cmd.Flags().Changed("interaction") {
		opts.Interaction = f.interaction
	}
	if cmd.Flags().Changed("link-target") {
		opts.LinkTarget = f.linkTarget
	}
	if cmd.Flags().Changed("frame") {
		opts.Frame = f.frame
	}
}

// runRender runs the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, flags layoutFlags, output string, opts pipeline.Options) error {
	src, err := c.openSource(ctx, input, flags.title)
	if err != nil {
		return err
	}
	defer src.Close()

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.Describe()+"...")
	spinner.Start()

	result, err := runner.Execute(ctx, src, opts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	base := basePath(output, input)
	spinner.SetMessage(fmt.Sprintf("Writing %s.*", base))
	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		path := base + pipeline.FileExtensions[format]
		if err := writeOutput(path, result.Artifacts[format]); err != nil {
			spinner.StopWithError("Write failed")
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	spinner.Stop()
	prog.done("Rendered overview", "files", len(paths), "sites", result.Stats.Sites)

	if result.Infeasible != nil {
		printWarning("%d sites do not fit %gx%g; wrote the empty panel", result.Stats.Items, opts.Width, opts.Height)
		printNextStep("Try another panel size", fmt.Sprintf("%s layout -n %d --width %g --height %g", appName, result.Stats.Items, 2*opts.Width, 2*opts.Height))
	} else {
		printSuccess("Render complete (%d × %d grid)", result.Geometry.Columns, result.Geometry.Rows)
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Sites, result.Stats.Items, result.CacheInfo.RenderHit)
	printStateCounts(result.Overview.Counts())
	return nil
}

// basePath derives the output base from -o or the input file. Known format
// extensions on -o are stripped so "-o panel.svg -f svg,png" writes
// panel.svg and panel.png.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultOutputBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	exts := make([]string, 0, len(pipeline.FileExtensions))
	for _, ext := range pipeline.FileExtensions {
		exts = append(exts, ext)
	}
	// ".gv.svg" must win over ".svg"
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
