package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// rsvgBinary is the librsvg command-line converter.
const rsvgBinary = "rsvg-convert"

// RSVGRenderer rasterizes documents with rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
type RSVGRenderer struct {
	// Binary overrides the rsvg-convert executable (default: looked up in PATH).
	Binary string

	// TempDir is where the transient SVG is written (default: os.TempDir()).
	TempDir string
}

// NewRSVGRenderer returns a renderer that runs rsvg-convert from PATH.
func NewRSVGRenderer() *RSVGRenderer {
	return &RSVGRenderer{Binary: rsvgBinary}
}

// Available reports whether the rsvg-convert executable can be found.
func (r *RSVGRenderer) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

// Render implements [Renderer]. The markup is written to a transient file
// that is removed before Render returns, whatever the outcome.
func (r *RSVGRenderer) Render(ctx context.Context, doc *svg.Document, pixelWidth int) (img *image.RGBA, err error) {
	w, h, err := PixelSize(doc, pixelWidth)
	if err != nil {
		return nil, err
	}

	bin, err := exec.LookPath(r.binary())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err,
			"rsvg renderer requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	markup, err := doc.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "serialize document")
	}

	tmp, err := os.CreateTemp(r.TempDir, "starfield-*.svg")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create transient svg")
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = errors.Wrap(errors.ErrCodeIO, rmErr, "remove transient svg")
			img = nil
		}
	}()

	if _, err := tmp.Write(markup); err != nil {
		tmp.Close()
		return nil, errors.Wrap(errors.ErrCodeIO, err, "write transient svg")
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "close transient svg")
	}

	out, err := rsvgConvert(ctx, bin, tmp.Name(), "-f", "png", "-w", strconv.Itoa(w), "-h", strconv.Itoa(h))
	if err != nil {
		return nil, err
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, err, "decode rsvg-convert output")
	}
	return toRGBA(decoded, w, h), nil
}

func (r *RSVGRenderer) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return rsvgBinary
}

// rsvgConvert shells out to rsvg-convert and returns its stdout.
func rsvgConvert(ctx context.Context, bin, input string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, append(args, input)...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRasterization, fmt.Errorf("%v: %s", err, errBuf.String()), "rsvg-convert failed")
	}
	if out.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRasterization, "rsvg-convert produced no output")
	}
	return out.Bytes(), nil
}

// toRGBA copies src into a w×h RGBA image anchored at the origin. rsvg
// rounds sizes independently, so a mismatched result is scaled to the
// dimensions PixelSize promised.
func toRGBA(src image.Image, w, h int) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds() == image.Rect(0, 0, w, h) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Size() == dst.Bounds().Size() {
		xdraw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, xdraw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
