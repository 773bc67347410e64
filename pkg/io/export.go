package io

import (
	"bufio"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/matzehuels/starfield/pkg/errors"
	"github.com/matzehuels/starfield/pkg/svg"
)

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "nil image")
	}

	var err error
	switch f {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatJPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	default:
		_, perr := ParseFormat(string(f))
		return perr
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode %s", f)
	}
	return nil
}

// ExportImage writes img to path in format f. The file is replaced
// atomically; on failure no file is created at path.
func ExportImage(img image.Image, path string, f Format) error {
	if !f.valid() {
		_, err := ParseFormat(string(f))
		return err
	}
	return WriteFileAtomic(path, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		if err := Encode(bw, img, f); err != nil {
			return err
		}
		return bw.Flush()
	})
}

// ExportSVG writes doc's markup to path atomically.
func ExportSVG(doc *svg.Document, path string) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "nil document")
	}
	return WriteFileAtomic(path, doc.Encode)
}
