// Package io reads and writes starfield artifacts.
//
// # Raster Output
//
// [Encode] writes an image in one of the supported [Format]s:
//
//   - png: lossless, the default
//   - tiff: lossless, via golang.org/x/image/tiff
//   - bmp: lossless, via golang.org/x/image/bmp
//   - jpeg: lossy, quality [JPEGQuality]
//
// [FormatFromPath] picks a format from a file extension so callers can honor
// "-o field.tiff" without an explicit format flag.
//
// # Atomic Writes
//
// Every file written by this package goes through [WriteFileAtomic]: the
// content is written to a temporary file in the destination directory, synced,
// and renamed over the destination. A failed write removes the temporary file
// and leaves any existing destination untouched, so a path either holds the
// complete artifact or nothing new.
//
//	err := io.ExportImage(img, "sky.png", io.FormatPNG)
//
// # Vector Documents
//
// [ExportSVG] and [ImportSVG] persist an [svg.Document]. The intermediate
// document is not a stable contract; it is kept only when a caller asks for
// it explicitly.
//
// [svg.Document]: github.com/matzehuels/starfield/pkg/svg.Document
package io
