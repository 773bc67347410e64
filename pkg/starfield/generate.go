package starfield

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/starfield/pkg/svg"
)

// Canvas is the declared extent of a field.
type Canvas struct {
	Width      float64
	Height     float64
	Unit       string
	Background Color
}

// Star is one sampled disc. Stars have no identity beyond their index.
type Star struct {
	X, Y    float64 // center in canvas units
	Radius  float64
	Opacity float64 // fill-opacity in [0, 1]
}

// Field is the result of [Generate].
type Field struct {
	Canvas    Canvas
	StarColor Color
	Stars     []Star
}

// NewRand returns the random source for a run.
// Seed 0 seeds from the runtime source so every run differs.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64() | 1
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Generate validates cfg and samples cfg.StarCount stars with rng.
// cfg.Seed is ignored; the caller chooses the source.
func Generate(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewRand(0)
	}

	field := &Field{
		Canvas: Canvas{
			Width:      cfg.Width,
			Height:     cfg.Height(),
			Unit:       cfg.Unit,
			Background: cfg.Background,
		},
		StarColor: cfg.StarColor,
		Stars:     make([]Star, cfg.StarCount),
	}

	for i := range field.Stars {
		field.Stars[i] = Star{
			X:       uniform(rng, 0, field.Canvas.Width),
			Y:       uniform(rng, 0, field.Canvas.Height),
			Radius:  uniform(rng, cfg.Radius.Min, cfg.Radius.Max),
			Opacity: uniform(rng, cfg.Opacity.Min, cfg.Opacity.Max),
		}
	}
	return field, nil
}

// Document builds the vector document: the background rect followed by one
// circle per star in generation order.
func (f *Field) Document() *svg.Document {
	doc := svg.New(f.Canvas.Width, f.Canvas.Height, f.Canvas.Unit, f.Canvas.Background.NRGBA())
	doc.Circles = make([]svg.Circle, 0, len(f.Stars))
	fill := f.StarColor.NRGBA()
	for _, s := range f.Stars {
		doc.AddCircle(svg.Circle{
			CX:          s.X,
			CY:          s.Y,
			R:           s.Radius,
			Fill:        fill,
			FillOpacity: s.Opacity,
		})
	}
	return doc
}

// uniform samples [min, max). Rounding in min+u*(max-min) can land on max
// for u close to 1, so the result is pulled back below max.
func uniform(rng *rand.Rand, min, max float64) float64 {
	if min == max {
		return min
	}
	v := min + rng.Float64()*(max-min)
	if v >= max {
		v = math.Nextafter(max, min)
	}
	return v
}
