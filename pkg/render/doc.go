// Package render rasterizes vector documents.
//
// # Overview
//
// A [Renderer] turns an [svg.Document] into an *image.RGBA of a requested
// pixel width. The pixel height always comes from the document's own
// declared size via [PixelSize], so every renderer produces the same
// dimensions for the same input.
//
// Two implementations are provided:
//
//   - [VectorRenderer] ("vector"): in-process, pure Go, built on
//     golang.org/x/image/vector. This is the default.
//   - [RSVGRenderer] ("rsvg"): shells out to rsvg-convert from librsvg.
//
// Pick one by name with [New]:
//
//	r, err := render.New("vector")
//	img, err := r.Render(ctx, doc, 2000)
//
// # External Rasterizer
//
// [RSVGRenderer] writes the markup to a transient file in the OS temp
// directory, runs rsvg-convert on it and removes the file on every path.
// It requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Errors
//
// Rendering failures are reported as RASTERIZATION_ERROR, wrapping the
// cause. A pixel width that is not positive, or a raster larger than
// [MaxPixels], is INVALID_PARAMETER.
//
// [svg.Document]: github.com/matzehuels/starfield/pkg/svg.Document
package render
