package render

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

var (
	navy  = color.NRGBA{R: 0x19, G: 0x19, B: 0x70, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    any
		wantErr bool
	}{
		{"", &VectorRenderer{}, false},
		{"vector", &VectorRenderer{}, false},
		{"rsvg", &RSVGRenderer{}, false},
		{"cairo", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidRenderer) {
					t.Errorf("New(%q) error code = %v", tt.name, errors.GetCode(err))
				}
				return
			}
			switch tt.want.(type) {
			case *VectorRenderer:
				if _, ok := r.(*VectorRenderer); !ok {
					t.Errorf("New(%q) = %T, want *VectorRenderer", tt.name, r)
				}
			case *RSVGRenderer:
				if _, ok := r.(*RSVGRenderer); !ok {
					t.Errorf("New(%q) = %T, want *RSVGRenderer", tt.name, r)
				}
			}
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "rsvg" || names[1] != "vector" {
		t.Errorf("Names() = %v, want [rsvg vector]", names)
	}
}

func TestPixelSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		pixelWidth    int
		wantW, wantH  int
		wantErr       bool
	}{
		{"banner", 2000, 12000, 2000, 2000, 12000, false},
		{"square scaled", 100, 100, 250, 250, 250, false},
		{"rounding", 3, 1, 100, 100, 33, false},
		{"tiny height", 1000, 1, 10, 10, 1, false},
		{"zero pixel width", 100, 100, 0, 0, 0, true},
		{"too many pixels", 1, 1, 1 << 15, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := svg.New(tt.width, tt.height, "mm", navy)
			w, h, err := PixelSize(doc, tt.pixelWidth)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PixelSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PixelSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestPixelSizeInvalidDocument(t *testing.T) {
	if _, _, err := PixelSize(nil, 10); !errors.Is(err, errors.ErrCodeRasterization) {
		t.Errorf("PixelSize(nil) error = %v, want RASTERIZATION_ERROR", err)
	}
	doc := svg.New(0, 10, "mm", navy)
	if _, _, err := PixelSize(doc, 10); !errors.Is(err, errors.ErrCodeRasterization) {
		t.Errorf("PixelSize(zero width) error = %v, want RASTERIZATION_ERROR", err)
	}
}

func TestVectorRendererBackgroundOnly(t *testing.T) {
	doc := svg.New(60, 360, "mm", navy)

	img, err := NewVectorRenderer().Render(context.Background(), doc, 120)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 120, 720) {
		t.Fatalf("bounds = %v, want 120x720", got)
	}

	want := color.RGBA{R: 0x19, G: 0x19, B: 0x70, A: 0xff}
	for y := 0; y < 720; y++ {
		for x := 0; x < 120; x++ {
			if got := rgbaAt(img, x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestVectorRendererOpaqueStar(t *testing.T) {
	doc := svg.New(100, 100, "mm", navy)
	doc.AddCircle(svg.Circle{CX: 50, CY: 50, R: 10, Fill: white, FillOpacity: 1})

	img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if got := rgbaAt(img, 50, 50); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("center pixel = %v, want white", got)
	}
	if got := rgbaAt(img, 45, 52); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("interior pixel = %v, want white", got)
	}
	if got := rgbaAt(img, 5, 5); got != (color.RGBA{0x19, 0x19, 0x70, 0xff}) {
		t.Errorf("corner pixel = %v, want navy", got)
	}
	if got := rgbaAt(img, 50, 30); got != (color.RGBA{0x19, 0x19, 0x70, 0xff}) {
		t.Errorf("pixel outside radius = %v, want navy", got)
	}
}

func TestVectorRendererTranslucentStar(t *testing.T) {
	doc := svg.New(100, 100, "mm", color.NRGBA{A: 0xff})
	doc.AddCircle(svg.Circle{CX: 50, CY: 50, R: 20, Fill: white, FillOpacity: 0.5})

	img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := rgbaAt(img, 50, 50)
	if math.Abs(float64(got.R)-128) > 2 || got.R != got.G || got.G != got.B || got.A != 0xff {
		t.Errorf("half-opaque white over black = %v, want ~(128,128,128,255)", got)
	}
}

func TestVectorRendererEdgeClipping(t *testing.T) {
	doc := svg.New(100, 100, "mm", navy)
	doc.AddCircle(svg.Circle{CX: 0, CY: 0, R: 10, Fill: white, FillOpacity: 1})
	doc.AddCircle(svg.Circle{CX: 100, CY: 100, R: 10, Fill: white, FillOpacity: 1})
	doc.AddCircle(svg.Circle{CX: 500, CY: 500, R: 10, Fill: white, FillOpacity: 1})

	img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := rgbaAt(img, 1, 1); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("clipped top-left star pixel = %v, want white", got)
	}
	if got := rgbaAt(img, 98, 98); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("clipped bottom-right star pixel = %v, want white", got)
	}
	if got := rgbaAt(img, 50, 50); got != (color.RGBA{0x19, 0x19, 0x70, 0xff}) {
		t.Errorf("center pixel = %v, want navy", got)
	}
}

func TestVectorRendererLargeCircles(t *testing.T) {
	whitePx := color.RGBA{0xff, 0xff, 0xff, 0xff}
	navyPx := color.RGBA{0x19, 0x19, 0x70, 0xff}

	t.Run("covering", func(t *testing.T) {
		doc := svg.New(100, 100, "mm", navy)
		doc.AddCircle(svg.Circle{CX: 50, CY: 50, R: 1e8, Fill: white, FillOpacity: 1})

		img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		for _, p := range []image.Point{{0, 0}, {99, 0}, {0, 99}, {99, 99}, {50, 50}} {
			if got := rgbaAt(img, p.X, p.Y); got != whitePx {
				t.Errorf("pixel %v = %v, want white", p, got)
			}
		}
	})

	t.Run("edge crossing", func(t *testing.T) {
		doc := svg.New(100, 100, "mm", navy)
		doc.AddCircle(svg.Circle{CX: 5050, CY: 50, R: 5000, Fill: white, FillOpacity: 1})

		img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got := rgbaAt(img, 40, 50); got != navyPx {
			t.Errorf("pixel left of the edge = %v, want navy", got)
		}
		if got := rgbaAt(img, 60, 50); got != whitePx {
			t.Errorf("pixel right of the edge = %v, want white", got)
		}
	})

	t.Run("edge crossing beyond limit", func(t *testing.T) {
		doc := svg.New(100, 100, "mm", navy)
		doc.AddCircle(svg.Circle{CX: 1e8 + 50, CY: 50, R: 1e8, Fill: white, FillOpacity: 1})

		_, err := NewVectorRenderer().Render(context.Background(), doc, 100)
		if !errors.Is(err, errors.ErrCodeRasterization) {
			t.Errorf("Render() error = %v, want RASTERIZATION_ERROR", err)
		}
	})

	t.Run("outside", func(t *testing.T) {
		doc := svg.New(100, 100, "mm", navy)
		doc.AddCircle(svg.Circle{CX: -1e9, CY: -1e9, R: 1e8, Fill: white, FillOpacity: 1})

		img, err := NewVectorRenderer().Render(context.Background(), doc, 100)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if got := rgbaAt(img, 0, 0); got != navyPx {
			t.Errorf("pixel = %v, want navy", got)
		}
	})
}

func TestVectorRendererScalesToPixelWidth(t *testing.T) {
	doc := svg.New(10, 10, "mm", navy)
	doc.AddCircle(svg.Circle{CX: 5, CY: 5, R: 1, Fill: white, FillOpacity: 1})

	img, err := NewVectorRenderer().Render(context.Background(), doc, 400)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 400 {
		t.Fatalf("bounds = %v, want 400x400", img.Bounds())
	}
	// The unit-radius circle becomes 40px; 30px off-center is still inside.
	if got := rgbaAt(img, 230, 200); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("scaled interior pixel = %v, want white", got)
	}
}

func TestVectorRendererCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := svg.New(10, 10, "mm", navy)
	doc.AddCircle(svg.Circle{CX: 5, CY: 5, R: 1, Fill: white, FillOpacity: 1})

	if _, err := NewVectorRenderer().Render(ctx, doc, 10); err == nil {
		t.Error("Render() with cancelled context should fail")
	}
}

func TestRSVGRendererMissingBinary(t *testing.T) {
	r := &RSVGRenderer{Binary: "starfield-no-such-rsvg-convert"}
	if r.Available() {
		t.Skip("unexpected binary on PATH")
	}

	doc := svg.New(10, 10, "mm", navy)
	_, err := r.Render(context.Background(), doc, 10)
	if !errors.Is(err, errors.ErrCodeRasterization) {
		t.Errorf("Render() error = %v, want RASTERIZATION_ERROR", err)
	}
}

func TestRSVGRendererCleansUpTransientFile(t *testing.T) {
	r := NewRSVGRenderer()
	if !r.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r.TempDir = t.TempDir()

	doc := svg.New(60, 360, "mm", navy)
	doc.AddCircle(svg.Circle{CX: 30, CY: 30, R: 10, Fill: white, FillOpacity: 1})

	img, err := r.Render(context.Background(), doc, 60)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 60, 360) {
		t.Errorf("bounds = %v, want 60x360", got)
	}
	if got := rgbaAt(img, 30, 30); got.R < 0xf0 || got.G < 0xf0 {
		t.Errorf("star center = %v, want white", got)
	}

	entries, err := os.ReadDir(r.TempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("transient files left behind: %v", entries)
	}
}

func TestRSVGRendererCleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "rsvg-convert")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\necho boom >&2\nexit 3\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	tmp := filepath.Join(dir, "tmp")
	if err := os.Mkdir(tmp, 0o755); err != nil {
		t.Fatal(err)
	}

	r := &RSVGRenderer{Binary: fake, TempDir: tmp}
	if !r.Available() {
		t.Skip("cannot execute shell scripts here")
	}

	doc := svg.New(10, 10, "mm", navy)
	_, err := r.Render(context.Background(), doc, 10)
	if !errors.Is(err, errors.ErrCodeRasterization) {
		t.Fatalf("Render() error = %v, want RASTERIZATION_ERROR", err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("transient files left behind after failure: %v", entries)
	}
}
