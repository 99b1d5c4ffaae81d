package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/pkg/pipeline"
)

// layoutCommand creates the layout command for computing a single layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{Layout: pipeline.DefaultLayout}

	cmd := &cobra.Command{
		Use:   "layout [scene.toml|scene.json]",
		Short: "Compute a layout of a scene",
		Long: `Compute a layout of a scene and write it as SVG and/or JSON.

Layouts are named shelf, grid[N] or page[N,vertical|horizontal], where N is
the section shown. With --from the output is the frame of a transition from
that layout at --progress (0 to 1).

Results are cached locally for faster subsequent runs.`,
		Example: `  shelfview layout library.toml
  shelfview layout library.toml -l grid[1] -f svg,json
  shelfview layout library.toml -l page[0] --from shelf --progress 0.4 --hidden`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ScenePath = args[0]
			opts.Formats = parseFormats(formats)
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path prefix (default: <input> without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: svg (default), json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the flags shared by layout and transition.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Layout, "layout", "l", opts.Layout, "layout: shelf, grid[N], page[N,direction]")
	cmd.Flags().StringVar(&opts.From, "from", opts.From, "source layout of a transition")
	cmd.Flags().Float64Var(&opts.Progress, "progress", opts.Progress, "transition progress (0 to 1)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "container width (default: scene bounds)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "container height (default: scene bounds)")
	cmd.Flags().BoolVar(&opts.Hidden, "hidden", false, "outline hidden items in SVG output")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label items with their index path in SVG output")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
}

// runLayout runs the pipeline once and writes its artifacts.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(outputBase(opts.ScenePath, output), opts.Formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Layout complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Sections, result.Stats.Items, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if opts.From == "" {
		to := opts.Layout
		if to == pipeline.DefaultLayout {
			to = "grid[0]"
		}
		printNewline()
		printNextStep("Animate", fmt.Sprintf("%s scrub %s --to %s", appName, opts.ScenePath, to))
	}
	return nil
}
