package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starfield/pkg/pipeline"
)

// generateCommand creates the generate command, the main entry point.
func (c *CLI) generateCommand() *cobra.Command {
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a starfield image",
		Long: `Generate a starfield image.

The generator places --stars translucent circles uniformly at random on a
solid background, builds the vector document and rasterizes it to
--pixel-width pixels. The pixel height follows the canvas aspect ratio.

Defaults produce a 2000×12000 px midnight-blue banner with 1000 stars.
Every parameter can also be set in a TOML config file; flags win.

Examples:
  starfield generate -o skybox.png
  starfield generate --stars 3 --width 100 --aspect-ratio 1 --seed 7 -o three.png
  starfield generate --config night.toml --svg night.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, source, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if source != "" {
				c.Logger.Debug("loaded config", "path", source)
			}
			return c.runGenerate(cmd.Context(), opts)
		},
	}

	flags.registerConfig(cmd.Flags())
	flags.registerField(cmd.Flags())
	flags.registerOutput(cmd.Flags())

	return cmd
}

// runGenerate executes the pipeline and reports the written artifacts.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = c.Logger
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, stderr, fmt.Sprintf("Rendering %d stars...", opts.StarCount))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.StopWithSuccess("Generated starfield")
	prog.done("pipeline finished")

	printStats(result.Stats.Stars, result.Stats.PixelWidth, result.Stats.PixelHeight)
	printFile(result.Output)
	if opts.SVGOutput != "" {
		printFile(opts.SVGOutput)
	}
	if !result.Format.Lossless() {
		printWarning("%s is lossy; faint stars may blur", result.Format)
	}
	if opts.Seed != 0 {
		printKeyValue("seed", fmt.Sprint(opts.Seed))
	}
	return nil
}
