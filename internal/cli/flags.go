package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/starfield/pkg/errors"
	sfio "github.com/matzehuels/starfield/pkg/io"
	"github.com/matzehuels/starfield/pkg/pipeline"
	"github.com/matzehuels/starfield/pkg/render"
	"github.com/matzehuels/starfield/pkg/starfield"
)

// optionFlags holds command-line overrides for pipeline.Options.
// Only flags the user actually set are applied, so values from a config
// file survive unless overridden.
type optionFlags struct {
	configPath string

	stars       int
	width       float64
	aspectRatio float64
	radiusMin   float64
	radiusMax   float64
	opacityMin  float64
	opacityMax  float64
	background  string
	starColor   string
	unit        string
	seed        uint64

	pixelWidth int
	output     string
	format     string
	renderer   string
	svgOutput  string
}

func newOptionFlags() *optionFlags {
	d := pipeline.DefaultOptions()
	return &optionFlags{
		stars:       d.StarCount,
		width:       d.Width,
		aspectRatio: d.AspectRatio,
		radiusMin:   d.Radius.Min,
		radiusMax:   d.Radius.Max,
		opacityMin:  d.Opacity.Min,
		opacityMax:  d.Opacity.Max,
		background:  d.Background.String(),
		starColor:   d.StarColor.String(),
		unit:        d.Unit,
		seed:        d.Seed,
		pixelWidth:  d.PixelWidth,
		output:      d.Output,
		renderer:    d.Renderer,
	}
}

// registerConfig adds the --config flag.
func (f *optionFlags) registerConfig(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "TOML config file (default: "+configHint()+" if present)")
}

// registerField adds the star field generation flags.
func (f *optionFlags) registerField(fs *pflag.FlagSet) {
	fs.IntVarP(&f.stars, "stars", "n", f.stars, "number of stars")
	fs.Float64Var(&f.width, "width", f.width, "canvas width in --unit")
	fs.Float64Var(&f.aspectRatio, "aspect-ratio", f.aspectRatio, "canvas width / height")
	fs.Float64Var(&f.radiusMin, "radius-min", f.radiusMin, "minimum star radius")
	fs.Float64Var(&f.radiusMax, "radius-max", f.radiusMax, "maximum star radius (exclusive)")
	fs.Float64Var(&f.opacityMin, "opacity-min", f.opacityMin, "minimum star opacity")
	fs.Float64Var(&f.opacityMax, "opacity-max", f.opacityMax, "maximum star opacity (exclusive)")
	fs.StringVar(&f.background, "background", f.background, "background color (#rrggbb)")
	fs.StringVar(&f.starColor, "star-color", f.starColor, "star color (#rrggbb)")
	fs.StringVar(&f.unit, "unit", f.unit, "canvas unit: mm, cm, in, pt, px")
	fs.Uint64Var(&f.seed, "seed", f.seed, "random seed (0 = different field every run)")
	fs.StringVar(&f.svgOutput, "svg", "", "also keep the vector document at this path")
}

// registerOutput adds the raster output flags.
func (f *optionFlags) registerOutput(fs *pflag.FlagSet) {
	fs.IntVarP(&f.pixelWidth, "pixel-width", "w", f.pixelWidth, "output width in pixels (height follows the aspect ratio)")
	fs.StringVarP(&f.output, "output", "o", f.output, "output image path")
	fs.StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(sfio.Formats(), ", ")+" (default: from --output extension, else png)")
	fs.StringVar(&f.renderer, "renderer", f.renderer, "rasterizer: "+strings.Join(render.Names(), ", "))
}

// resolve loads the config file (explicit, or the user default) and applies
// the flags that were set on cmd.
func (f *optionFlags) resolve(cmd *cobra.Command) (pipeline.Options, string, error) {
	path := f.configPath
	if path == "" {
		path = defaultConfigPath()
	}

	opts := pipeline.DefaultOptions()
	if path != "" {
		loaded, err := pipeline.LoadOptions(path)
		if err != nil {
			return pipeline.Options{}, "", err
		}
		opts = loaded
	}

	if err := f.apply(cmd.Flags(), &opts); err != nil {
		return pipeline.Options{}, "", err
	}
	return opts, path, nil
}

func (f *optionFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	set := func(name string, fn func()) {
		if fl := fs.Lookup(name); fl != nil && fl.Changed {
			fn()
		}
	}

	set("stars", func() { opts.StarCount = f.stars })
	set("width", func() { opts.Width = f.width })
	set("aspect-ratio", func() { opts.AspectRatio = f.aspectRatio })
	set("radius-min", func() { opts.Radius.Min = f.radiusMin })
	set("radius-max", func() { opts.Radius.Max = f.radiusMax })
	set("opacity-min", func() { opts.Opacity.Min = f.opacityMin })
	set("opacity-max", func() { opts.Opacity.Max = f.opacityMax })
	set("unit", func() { opts.Unit = f.unit })
	set("seed", func() { opts.Seed = f.seed })
	set("svg", func() { opts.SVGOutput = f.svgOutput })
	set("pixel-width", func() { opts.PixelWidth = f.pixelWidth })
	set("output", func() { opts.Output = f.output })
	set("format", func() { opts.Format = f.format })
	set("renderer", func() { opts.Renderer = f.renderer })

	var err error
	set("background", func() { opts.Background, err = parseColorFlag("background", f.background) })
	if err != nil {
		return err
	}
	set("star-color", func() { opts.StarColor, err = parseColorFlag("star-color", f.starColor) })
	return err
}

func parseColorFlag(name, value string) (starfield.Color, error) {
	c, err := starfield.ParseColor(value)
	if err != nil {
		return starfield.Color{}, errors.Wrap(errors.ErrCodeInvalidParameter, err, "--%s", name)
	}
	return c, nil
}

func configHint() string {
	dir, err := configDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configFileName)
}
