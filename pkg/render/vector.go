package render

import (
	"context"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// kappa is the control-point distance for approximating a quarter circle
// with one cubic Bézier segment.
const kappa = 0.5522847498

// VectorRenderer rasterizes documents in-process with golang.org/x/image/vector.
// Circles are anti-aliased and composited in document order with
// source-over blending.
type VectorRenderer struct{}

// NewVectorRenderer returns the in-process renderer.
func NewVectorRenderer() *VectorRenderer {
	return &VectorRenderer{}
}

// Render implements [Renderer].
func (r *VectorRenderer) Render(ctx context.Context, doc *svg.Document, pixelWidth int) (*image.RGBA, error) {
	w, h, err := PixelSize(doc, pixelWidth)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	sx := float64(w) / doc.Width
	sy := float64(h) / doc.Height

	bg := doc.Background
	bgRect := image.Rect(
		int(math.Round(bg.X*sx)),
		int(math.Round(bg.Y*sy)),
		int(math.Round((bg.X+bg.Width)*sx)),
		int(math.Round((bg.Y+bg.Height)*sy)),
	).Intersect(img.Bounds())
	xdraw.Draw(img, bgRect, image.NewUniform(bg.Fill), image.Point{}, xdraw.Src)

	z := vector.NewRasterizer(1, 1)
	for i, c := range doc.Circles {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeRasterization, err, "rasterize interrupted")
			}
		}
		if err := fillCircle(z, img, c, sx, sy); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRasterization, err, "circle %d", i)
		}
	}
	return img, nil
}

// fillCircle composites one circle onto dst. The rasterizer and coverage
// mask are sized to the part of the circle inside dst; the path is offset so
// that its outside parts fall beyond the rasterizer's bounds and are clipped.
func fillCircle(z *vector.Rasterizer, dst *image.RGBA, c svg.Circle, sx, sy float64) error {
	if c.R <= 0 || c.FillOpacity <= 0 {
		return nil
	}
	cx, cy := c.CX*sx, c.CY*sy
	rx, ry := c.R*sx, c.R*sy

	b := dst.Bounds()
	clip := image.Rect(
		clampInt(math.Floor(cx-rx), b.Min.X, b.Max.X),
		clampInt(math.Floor(cy-ry), b.Min.Y, b.Max.Y),
		clampInt(math.Ceil(cx+rx), b.Min.X, b.Max.X),
		clampInt(math.Ceil(cy+ry), b.Min.Y, b.Max.Y),
	)
	if clip.Empty() {
		return nil
	}

	src := image.NewUniform(color.NRGBA{
		R: c.Fill.R,
		G: c.Fill.G,
		B: c.Fill.B,
		A: uint8(math.Round(c.FillOpacity * 0xff)),
	})

	if covers(cx, cy, rx, ry, clip) {
		xdraw.Draw(dst, clip, src, image.Point{}, xdraw.Over)
		return nil
	}
	if 2*rx > MaxCircleDiameter || 2*ry > MaxCircleDiameter {
		return errors.New(errors.ErrCodeRasterization,
			"circle of %.0fx%.0f pixels exceeds the %d pixel diameter limit", 2*rx, 2*ry, MaxCircleDiameter)
	}

	z.Reset(clip.Dx(), clip.Dy())
	addEllipse(z,
		float32(cx-float64(clip.Min.X)),
		float32(cy-float64(clip.Min.Y)),
		float32(rx), float32(ry))

	mask := image.NewAlpha(image.Rect(0, 0, clip.Dx(), clip.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	xdraw.DrawMask(dst, clip, src, image.Point{}, mask, image.Point{}, xdraw.Over)
	return nil
}

// covers reports whether every corner of r lies inside the ellipse, which
// for a convex shape means r is fully covered.
func covers(cx, cy, rx, ry float64, r image.Rectangle) bool {
	inside := func(x, y int) bool {
		dx := (float64(x) - cx) / rx
		dy := (float64(y) - cy) / ry
		return dx*dx+dy*dy <= 1
	}
	return inside(r.Min.X, r.Min.Y) && inside(r.Max.X, r.Min.Y) &&
		inside(r.Min.X, r.Max.Y) && inside(r.Max.X, r.Max.Y)
}

// clampInt converts v to an int within [lo, hi]. NaN maps to lo.
func clampInt(v float64, lo, hi int) int {
	switch {
	case !(v > float64(lo)):
		return lo
	case v > float64(hi):
		return hi
	}
	return int(v)
}

// addEllipse adds a closed axis-aligned ellipse to z as four cubic segments.
func addEllipse(z *vector.Rasterizer, cx, cy, rx, ry float32) {
	kx, ky := float32(kappa)*rx, float32(kappa)*ry

	z.MoveTo(cx, cy-ry)
	z.CubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	z.CubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	z.CubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	z.ClosePath()
}
