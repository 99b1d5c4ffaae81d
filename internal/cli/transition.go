package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/pipeline"
)

const defaultFrames = 5

// transitionCommand creates the transition command, which renders evenly
// spaced frames of a transition.
func (c *CLI) transitionCommand() *cobra.Command {
	var (
		output  string
		formats string
		frames  int
		noCache bool
	)
	opts := pipeline.Options{Layout: "grid[0]", From: pipeline.DefaultLayout}

	cmd := &cobra.Command{
		Use:   "transition [scene.toml|scene.json]",
		Short: "Render the frames of a transition between two layouts",
		Long: `Render evenly spaced frames of a transition between two layouts.

Frames are written as <output>.<NNN>.<format>, from progress 0 (the --from
layout) to progress 1 (the --layout layout).`,
		Example: `  shelfview transition library.toml --from shelf -l grid[0] -n 9
  shelfview transition strip.json --from grid[0] -l page[0,horizontal] -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ScenePath = args[0]
			opts.Formats = parseFormats(formats)
			return c.runTransition(cmd.Context(), opts, output, frames, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path prefix (default: <input> without extension)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output formats: svg (default), json")
	cmd.Flags().IntVarP(&frames, "frames", "n", defaultFrames, "number of frames (at least 2)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// frameProgress returns n evenly spaced progress values from 0 to 1.
func frameProgress(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

func (c *CLI) runTransition(ctx context.Context, opts pipeline.Options, output string, frames int, noCache bool) error {
	if frames < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "frames must be at least 2 (got %d)", frames)
	}
	if opts.From == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--from is required")
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sc, err := pipeline.LoadScene(ctx, opts)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", opts.ScenePath, err)
	}
	base := outputBase(opts.ScenePath, output)
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s → %s...", opts.From, opts.Layout))
	spinner.Start()

	var paths []string
	cached := 0
	for i, p := range frameProgress(frames) {
		if ctx.Err() != nil {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.SetMessage("Rendering %s → %s (frame %d/%d)...", opts.From, opts.Layout, i+1, frames)
		frame := opts
		frame.Scene = sc
		frame.Progress = p
		result, err := runner.Execute(ctx, frame)
		if err != nil {
			spinner.StopWithError("Transition failed")
			return err
		}
		if result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit {
			cached++
		}
		written, err := writeArtifacts(fmt.Sprintf("%s.%03d", base, i), frame.Formats, result.Artifacts)
		if err != nil {
			spinner.StopWithError("Transition failed")
			return err
		}
		paths = append(paths, written...)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %d frames", frames), "cached", cached)

	printSuccess("Transition complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(sc.NumberOfSections(), sc.ItemCount(), cached == frames)
	return nil
}
