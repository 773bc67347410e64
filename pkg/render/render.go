package render

import (
	"context"
	"image"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// Renderer names accepted by [New].
const (
	NameVector = "vector"
	NameRSVG   = "rsvg"
)

// DefaultRenderer is the renderer used when none is configured.
const DefaultRenderer = NameVector

// MaxPixels caps the raster size (width * height) a renderer will allocate.
const MaxPixels = 1 << 28

// MaxCircleDiameter caps the pixel diameter of a circle whose edge crosses
// the raster. Circles that cover the whole raster are exempt.
const MaxCircleDiameter = 1 << 14

// Renderer converts a vector document to a raster image.
type Renderer interface {
	// Render rasterizes doc at pixelWidth. The height is derived from the
	// document's aspect ratio, see PixelSize.
	Render(ctx context.Context, doc *svg.Document, pixelWidth int) (*image.RGBA, error)
}

var renderers = map[string]func() Renderer{
	NameVector: func() Renderer { return NewVectorRenderer() },
	NameRSVG:   func() Renderer { return NewRSVGRenderer() },
}

// Names returns the registered renderer names, sorted.
func Names() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New returns the renderer registered under name.
func New(name string) (Renderer, error) {
	if name == "" {
		name = DefaultRenderer
	}
	ctor, ok := renderers[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidRenderer,
			"unknown renderer %q (must be one of: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(), nil
}

// PixelSize returns the raster dimensions for doc at pixelWidth. The height
// is rounded to the nearest pixel and is at least 1.
func PixelSize(doc *svg.Document, pixelWidth int) (int, int, error) {
	if err := errors.ValidatePositiveInt("pixel_width", pixelWidth); err != nil {
		return 0, 0, err
	}
	if doc == nil {
		return 0, 0, errors.New(errors.ErrCodeRasterization, "nil document")
	}
	if err := doc.Validate(); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeRasterization, err, "cannot rasterize document")
	}

	h := math.Round(float64(pixelWidth) * doc.Height / doc.Width)
	if h < 1 {
		h = 1
	}
	if float64(pixelWidth)*h > MaxPixels {
		return 0, 0, errors.New(errors.ErrCodeInvalidParameter,
			"raster of %dx%.0f pixels exceeds the %d pixel limit", pixelWidth, h, MaxPixels)
	}
	return pixelWidth, int(h), nil
}
