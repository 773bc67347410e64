package starfield

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultStarCount is the number of stars in a field.
	DefaultStarCount = 1000

	// DefaultWidth is the canvas width in DefaultUnit.
	DefaultWidth = 2000.0

	// DefaultAspectRatio is width / height. 1/6 gives a tall banner.
	DefaultAspectRatio = 1.0 / 6.0

	// DefaultPixelWidth is the raster output width in pixels.
	DefaultPixelWidth = 2000

	// DefaultUnit is the physical unit of the canvas.
	DefaultUnit = "mm"
)

var (
	// DefaultRadius is the star radius range in canvas units.
	DefaultRadius = Range{Min: 2.0, Max: 2.8}

	// DefaultOpacity is the star fill-opacity range.
	DefaultOpacity = Range{Min: 0.7, Max: 1.0}

	// DefaultBackground is midnight blue.
	DefaultBackground = Color{R: 0x19, G: 0x19, B: 0x70}

	// DefaultStarColor is white.
	DefaultStarColor = Color{R: 0xff, G: 0xff, B: 0xff}
)

// =============================================================================
// Config
// =============================================================================

// Config holds every generation parameter.
// The zero value is not usable; start from [DefaultConfig].
type Config struct {
	StarCount   int     `toml:"star_count" json:"star_count"`
	Width       float64 `toml:"width" json:"width"`
	AspectRatio float64 `toml:"aspect_ratio" json:"aspect_ratio"`
	Radius      Range   `toml:"radius" json:"radius"`
	Opacity     Range   `toml:"opacity" json:"opacity"`
	Background  Color   `toml:"background" json:"background"`
	StarColor   Color   `toml:"star_color" json:"star_color"`
	PixelWidth  int     `toml:"pixel_width" json:"pixel_width"`
	Unit        string  `toml:"unit" json:"unit"`

	// Seed selects the random source; 0 means a fresh seed every run.
	Seed uint64 `toml:"seed" json:"seed,omitempty"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		StarCount:   DefaultStarCount,
		Width:       DefaultWidth,
		AspectRatio: DefaultAspectRatio,
		Radius:      DefaultRadius,
		Opacity:     DefaultOpacity,
		Background:  DefaultBackground,
		StarColor:   DefaultStarColor,
		PixelWidth:  DefaultPixelWidth,
		Unit:        DefaultUnit,
	}
}

// Height returns the canvas height, Width / AspectRatio.
func (c Config) Height() float64 {
	return c.Width / c.AspectRatio
}

// Validate reports the first parameter that violates its constraint.
// All errors carry [errors.ErrCodeInvalidParameter].
func (c Config) Validate() error {
	if err := errors.ValidateNonNegativeInt("star_count", c.StarCount); err != nil {
		return err
	}
	if err := errors.ValidatePositive("width", c.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("aspect_ratio", c.AspectRatio); err != nil {
		return err
	}
	if err := errors.ValidatePositive("height", c.Height()); err != nil {
		return err
	}
	if err := errors.ValidatePositiveRange("radius", c.Radius.Min, c.Radius.Max); err != nil {
		return err
	}
	if err := errors.ValidateUnitRange("opacity", c.Opacity.Min, c.Opacity.Max); err != nil {
		return err
	}
	if err := errors.ValidatePositiveInt("pixel_width", c.PixelWidth); err != nil {
		return err
	}
	if !svg.Units[c.Unit] {
		return errors.New(errors.ErrCodeInvalidParameter, "unit must be one of mm, cm, in, pt, px, got %q", c.Unit)
	}
	return nil
}

// =============================================================================
// Range
// =============================================================================

// Range is a half-open sampling interval [Min, Max).
// Min == Max is a degenerate range that always yields Min.
type Range struct {
	Min float64 `toml:"min" json:"min"`
	Max float64 `toml:"max" json:"max"`
}

// Contains reports whether v lies in the range. A degenerate range contains
// exactly its single value.
func (r Range) Contains(v float64) bool {
	if r.Min == r.Max {
		return v == r.Min
	}
	return v >= r.Min && v < r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g)", r.Min, r.Max)
}

// =============================================================================
// Color
// =============================================================================

// Color is an opaque sRGB color. It reads and writes as "#rrggbb" (or the
// short "#rgb" form) in TOML and JSON.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a hex color.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidParameter, err, "invalid color %q (want #rrggbb)", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func (c Color) String() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// NRGBA returns c as a fully opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
