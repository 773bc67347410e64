package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	sfio "github.com/matzehuels/starfield/pkg/io"
	"github.com/matzehuels/starfield/pkg/pipeline"
)

// rasterizeCommand creates the rasterize command for converting a kept
// vector document.
func (c *CLI) rasterizeCommand() *cobra.Command {
	flags := newOptionFlags()

	cmd := &cobra.Command{
		Use:   "rasterize [field.svg]",
		Short: "Rasterize a starfield SVG document",
		Long: `Rasterize a starfield SVG document.

The input must have the shape generate writes with --svg: one background
rect followed by circles. The pixel height follows the document's declared
aspect ratio. Without --output the raster is written next to the input,
named after it: field.svg becomes field.png.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") && opts.Output == pipeline.DefaultOutput {
				if opts.Output, err = derivedOutput(args[0], opts.Format); err != nil {
					return err
				}
			}
			return c.runRasterize(cmd.Context(), args[0], opts)
		},
	}

	flags.registerConfig(cmd.Flags())
	flags.registerOutput(cmd.Flags())

	return cmd
}

func (c *CLI) runRasterize(ctx context.Context, input string, opts pipeline.Options) error {
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, stderr, fmt.Sprintf("Rasterizing %s...", input))
	spinner.Start()

	result, err := c.newRunner().Rasterize(ctx, input, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Rasterization failed")
		return fmt.Errorf("rasterize %s: %w", input, err)
	}
	spinner.StopWithSuccess("Rasterized %s", input)

	printStats(result.Stats.Stars, result.Stats.PixelWidth, result.Stats.PixelHeight)
	printFile(result.Output)
	return nil
}

// derivedOutput names the raster after input, with the extension of format
// (png when empty).
func derivedOutput(input, format string) (string, error) {
	f := sfio.DefaultFormat
	if format != "" {
		var err error
		if f, err = sfio.ParseFormat(format); err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + f.Extension(), nil
}
