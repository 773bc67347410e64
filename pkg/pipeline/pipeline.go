// Package pipeline provides the complete starfield pipeline shared by every
// command.
//
// # Architecture
//
// A run has three stages:
//
//  1. Generate: sample the star field from a [starfield.Config]
//  2. Render: build the vector document and rasterize it
//  3. Write: encode the raster (and optionally the document) atomically
//
// All parameters are validated before the first stage, so an invalid run
// leaves no artifacts behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Output = "skybox.png"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Image.Bounds())
//
// Options can also be loaded from a TOML file with [LoadOptions]; unknown
// keys are rejected.
package pipeline

import (
	"image"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/errors"
	sfio "github.com/matzehuels/starfield/pkg/io"
	"github.com/matzehuels/starfield/pkg/render"
	"github.com/matzehuels/starfield/pkg/starfield"
	"github.com/matzehuels/starfield/pkg/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultOutput is the raster artifact path.
	DefaultOutput = "skybox.png"

	// DefaultRenderer is the rasterizer used when none is configured.
	DefaultRenderer = render.DefaultRenderer
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// Generation parameters are embedded so they share the top level of a TOML
// config file with the output settings.
type Options struct {
	starfield.Config

	// Output is the raster artifact path.
	Output string `toml:"output" json:"output"`

	// Format overrides the encoding implied by Output's extension.
	Format string `toml:"format,omitempty" json:"format,omitempty"`

	// Renderer names the rasterizer, see render.Names.
	Renderer string `toml:"renderer" json:"renderer"`

	// SVGOutput, when set, also keeps the vector document at this path.
	SVGOutput string `toml:"svg_output,omitempty" json:"svg_output,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`
}

// DefaultOptions returns options for the production starfield.
func DefaultOptions() Options {
	return Options{
		Config:   starfield.DefaultConfig(),
		Output:   DefaultOutput,
		Renderer: DefaultRenderer,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Field is the sampled star field. Nil for Rasterize runs.
	Field *starfield.Field

	// Document is the vector document that was rasterized.
	Document *svg.Document

	// Image is the raster output.
	Image *image.RGBA

	// Output is the path of the written raster artifact.
	Output string

	// Format is the encoding of Output.
	Format sfio.Format

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stars        int
	PixelWidth   int
	PixelHeight  int
	GenerateTime time.Duration
	RenderTime   time.Duration
	WriteTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format name is supported.
// The empty string is valid and means "infer from the output path".
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	_, err := sfio.ParseFormat(format)
	return err
}

// ValidateRenderer checks that a renderer name is registered.
func ValidateRenderer(name string) error {
	_, err := render.New(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// Validate checks every parameter of a generate run.
func (o *Options) Validate() error {
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := o.validateOutput(); err != nil {
		return err
	}

	// The raster limit depends only on the declared size, so it is known
	// before any sampling.
	w, _, err := render.PixelSize(documentFor(*o), o.PixelWidth)
	if err != nil {
		return err
	}
	if d := 2 * o.Radius.Max * float64(w) / o.Width; d > render.MaxCircleDiameter {
		return errors.New(errors.ErrCodeInvalidParameter,
			"radius.max %g renders stars %.0f pixels wide, above the %d pixel limit",
			o.Radius.Max, d, render.MaxCircleDiameter)
	}
	return nil
}

// validateOutput checks the settings shared by generate and rasterize runs.
func (o *Options) validateOutput() error {
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if o.SVGOutput != "" {
		if err := errors.ValidateOutputPath(o.SVGOutput); err != nil {
			return err
		}
		if sameFile(o.SVGOutput, o.Output) {
			return errors.New(errors.ErrCodeInvalidPath, "svg output and raster output are the same file: %s", o.Output)
		}
	}
	return nil
}

// OutputFormat resolves the raster encoding: an explicit Format wins, then
// Output's extension, then png.
func (o *Options) OutputFormat() (sfio.Format, error) {
	if o.Format != "" {
		return sfio.ParseFormat(o.Format)
	}
	if f, ok := sfio.FormatFromPath(o.Output); ok {
		return f, nil
	}
	return sfio.DefaultFormat, nil
}

// SetDefaults fills runtime options that have no serialized form.
func (o *Options) SetDefaults() {
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
