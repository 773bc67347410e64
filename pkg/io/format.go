package io

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/starfield/pkg/errors"
)

// Format is a raster output encoding.
type Format string

// Supported raster formats.
const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
	FormatJPEG Format = "jpeg"
)

// DefaultFormat is used when neither a format nor a known extension is given.
const DefaultFormat = FormatPNG

// JPEGQuality is the encoder quality for [FormatJPEG].
const JPEGQuality = 95

var extensions = map[string]Format{
	".png":  FormatPNG,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
	".bmp":  FormatBMP,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
}

// Formats returns the supported format names, sorted.
func Formats() []string {
	return []string{string(FormatBMP), string(FormatJPEG), string(FormatPNG), string(FormatTIFF)}
}

// ParseFormat resolves a user-supplied format name. "jpg" and "tif" are
// accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported format %q (must be one of: %s)", s, strings.Join(Formats(), ", "))
}

// FormatFromPath returns the format implied by path's extension.
// The second result is false when the extension is missing or unknown.
func FormatFromPath(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Extension returns the canonical file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatTIFF:
		return ".tiff"
	}
	return "." + string(f)
}

// Lossless reports whether f preserves every pixel exactly.
func (f Format) Lossless() bool {
	return f != FormatJPEG
}

func (f Format) valid() bool {
	return slices.Contains(Formats(), string(f))
}
