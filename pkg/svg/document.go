package svg

import (
	"image/color"
	"math"

	"github.com/matzehuels/starfield/pkg/errors"
)

// Namespace is the SVG XML namespace written on the root element.
const Namespace = "http://www.w3.org/2000/svg"

// unitNames lists the accepted units in the order length suffixes are
// matched. A unit that is a suffix of another must come after it.
var unitNames = []string{"mm", "cm", "in", "pt", "px"}

// Units accepted for the declared document size.
var Units = func() map[string]bool {
	m := make(map[string]bool, len(unitNames))
	for _, u := range unitNames {
		m[u] = true
	}
	return m
}()

// Rect is the opaque background rectangle.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Fill          color.NRGBA
}

// Circle is a filled, unstroked disc.
type Circle struct {
	CX, CY      float64
	R           float64
	Fill        color.NRGBA
	FillOpacity float64
}

// Document is a vector document: a canvas, one background and a sequence of
// circles painted in order.
type Document struct {
	Width  float64 // canvas width in user units (== declared units)
	Height float64 // canvas height in user units
	Unit   string  // declared physical unit, e.g. "mm"

	Background Rect
	Circles    []Circle
}

// New returns a document of the given size whose background covers the
// whole canvas with fill.
func New(width, height float64, unit string, fill color.NRGBA) *Document {
	fill.A = 0xff
	return &Document{
		Width:  width,
		Height: height,
		Unit:   unit,
		Background: Rect{
			Width:  width,
			Height: height,
			Fill:   fill,
		},
	}
}

// AddCircle appends c to the paint order.
func (d *Document) AddCircle(c Circle) {
	d.Circles = append(d.Circles, c)
}

// AspectRatio returns width / height.
func (d *Document) AspectRatio() float64 {
	return d.Width / d.Height
}

// Validate checks that the document can be serialized and rendered.
func (d *Document) Validate() error {
	if !finitePositive(d.Width) || !finitePositive(d.Height) {
		return errors.New(errors.ErrCodeInvalidMarkup, "document size must be positive, got %gx%g", d.Width, d.Height)
	}
	if d.Unit != "" && !Units[d.Unit] {
		return errors.New(errors.ErrCodeInvalidMarkup, "unsupported unit %q", d.Unit)
	}
	b := d.Background
	if !finitePositive(b.Width) || !finitePositive(b.Height) {
		return errors.New(errors.ErrCodeInvalidMarkup, "background size must be positive, got %gx%g", b.Width, b.Height)
	}
	for i, c := range d.Circles {
		if !finite(c.CX) || !finite(c.CY) || !finite(c.R) || c.R < 0 {
			return errors.New(errors.ErrCodeInvalidMarkup, "circle %d has invalid geometry (%g, %g, r=%g)", i, c.CX, c.CY, c.R)
		}
		if !(c.FillOpacity >= 0 && c.FillOpacity <= 1) {
			return errors.New(errors.ErrCodeInvalidMarkup, "circle %d fill-opacity %g outside [0, 1]", i, c.FillOpacity)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finitePositive(v float64) bool { return finite(v) && v > 0 }
