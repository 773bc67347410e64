package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starfield/pkg/errors"
	sfio "github.com/matzehuels/starfield/pkg/io"
	"github.com/matzehuels/starfield/pkg/observability"
	"github.com/matzehuels/starfield/pkg/render"
	"github.com/matzehuels/starfield/pkg/starfield"
	"github.com/matzehuels/starfield/pkg/svg"
)

// Runner executes pipeline runs.
//
// The Runner holds no per-run state, so multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	// Renderer overrides the rasterizer named in Options.Renderer.
	Renderer render.Renderer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil renderer selects one by name per run;
// a nil logger uses log.Default().
func NewRunner(r render.Renderer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Renderer: r, Logger: logger}
}

// Execute runs the complete generate → render → write pipeline.
//
// Every parameter is validated before any work starts; a validation failure
// returns an INVALID_PARAMETER (or INVALID_FORMAT, INVALID_RENDERER,
// INVALID_PATH) error without touching the filesystem.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	format, err := opts.OutputFormat()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	renderer, err := r.renderer(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Output: opts.Output, Format: format}

	// Stage 1: Generate
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, opts.StarCount)
	genStart := time.Now()
	field, err := starfield.Generate(opts.Config, starfield.NewRand(opts.Seed))
	hooks.OnGenerateComplete(ctx, opts.StarCount, time.Since(genStart), err)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Field = field
	result.Document = field.Document()
	result.Stats.Stars = len(field.Stars)
	result.Stats.GenerateTime = time.Since(genStart)

	opts.Logger.Info("generated star field",
		"stars", len(field.Stars),
		"width", field.Canvas.Width,
		"height", field.Canvas.Height,
		"unit", field.Canvas.Unit,
		"duration", result.Stats.GenerateTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	if err := r.rasterize(ctx, result, renderer, opts); err != nil {
		return nil, err
	}

	// Stage 3: Write
	if err := r.write(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// Rasterize renders an existing vector document from inPath and writes the
// raster output. Generation parameters other than PixelWidth are ignored.
//
// Unreadable or malformed markup is reported as RASTERIZATION_ERROR.
func (r *Runner) Rasterize(ctx context.Context, inPath string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := errors.ValidatePositiveInt("pixel_width", opts.PixelWidth); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := opts.validateOutput(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if sameFile(inPath, opts.Output) {
		return nil, errors.New(errors.ErrCodeInvalidPath, "input and output are the same file: %s", inPath)
	}
	format, err := opts.OutputFormat()
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	renderer, err := r.renderer(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	doc, err := sfio.ImportSVG(inPath)
	if err != nil {
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "read %s", inPath)
	}
	opts.Logger.Debug("loaded document",
		"path", inPath,
		"circles", len(doc.Circles),
		"width", doc.Width,
		"height", doc.Height,
		"aspect", doc.AspectRatio())

	result := &Result{
		Document: doc,
		Output:   opts.Output,
		Format:   format,
		Stats:    Stats{Stars: len(doc.Circles)},
	}
	if err := r.rasterize(ctx, result, renderer, opts); err != nil {
		return nil, err
	}
	if err := r.write(ctx, result, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// rasterize fills result.Image from result.Document.
func (r *Runner) rasterize(ctx context.Context, result *Result, renderer render.Renderer, opts Options) error {
	hooks := observability.Pipeline()
	if w, h, err := render.PixelSize(result.Document, opts.PixelWidth); err == nil {
		hooks.OnRenderStart(ctx, opts.Renderer, w, h)
	}
	start := time.Now()
	img, err := renderer.Render(ctx, result.Document, opts.PixelWidth)
	hooks.OnRenderComplete(ctx, opts.Renderer, time.Since(start), err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("render: %w", err)
	}
	result.Image = img
	result.Stats.PixelWidth = img.Bounds().Dx()
	result.Stats.PixelHeight = img.Bounds().Dy()
	result.Stats.RenderTime = time.Since(start)

	opts.Logger.Info("rasterized document",
		"renderer", opts.Renderer,
		"pixels", fmt.Sprintf("%dx%d", result.Stats.PixelWidth, result.Stats.PixelHeight),
		"duration", result.Stats.RenderTime)
	return nil
}

// write persists the vector document, when requested, and then the raster
// output. The raster is the last artifact to land, so a failed run never
// leaves a new raster behind; a kept document is removed again if the raster
// cannot be written.
func (r *Runner) write(ctx context.Context, result *Result, opts Options) error {
	start := time.Now()
	if opts.SVGOutput != "" {
		err := sfio.ExportSVG(result.Document, opts.SVGOutput)
		reportWrite(ctx, opts.SVGOutput, start, err)
		if err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	rasterStart := time.Now()
	err := sfio.ExportImage(result.Image, opts.Output, result.Format)
	reportWrite(ctx, opts.Output, rasterStart, err)
	if err != nil {
		if opts.SVGOutput != "" {
			if rmErr := os.Remove(opts.SVGOutput); rmErr != nil && !os.IsNotExist(rmErr) {
				opts.Logger.Warn("could not remove vector document", "path", opts.SVGOutput, "err", rmErr)
			}
		}
		return fmt.Errorf("write: %w", err)
	}
	if opts.SVGOutput != "" {
		opts.Logger.Debug("kept vector document", "path", opts.SVGOutput)
	}
	result.Stats.WriteTime = time.Since(start)

	opts.Logger.Info("wrote output",
		"path", opts.Output,
		"format", result.Format,
		"duration", result.Stats.WriteTime)
	return nil
}

func reportWrite(ctx context.Context, path string, start time.Time, err error) {
	var size int64
	if err == nil {
		if fi, statErr := os.Stat(path); statErr == nil {
			size = fi.Size()
		}
	}
	observability.Pipeline().OnWriteComplete(ctx, path, size, time.Since(start), err)
}

func (r *Runner) renderer(opts Options) (render.Renderer, error) {
	if r.Renderer != nil {
		return r.Renderer, nil
	}
	return render.New(opts.Renderer)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// documentFor is the vector document a generate run with opts would
// rasterize, without sampling a single star.
func documentFor(opts Options) *svg.Document {
	return svg.New(opts.Width, opts.Height(), opts.Unit, opts.Background.NRGBA())
}
