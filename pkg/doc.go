// Package pkg provides the core libraries for Starfield skybox generation.
//
// # Overview
//
// Starfield scatters translucent circles over a solid background and
// rasterizes the result, producing night-sky textures that can be tiled into
// a skybox. The pkg directory is organized into three areas:
//
//  1. Domain logic: [starfield] (sampling) and [svg] (the vector document)
//  2. Rendering and output: [render] (rasterizers) and [io] (encoders, atomic writes)
//  3. Orchestration: [pipeline] (generate → render → write)
//
// # Architecture
//
// The data flow of one run:
//
//	starfield.Config
//	       ↓
//	  [starfield] Generate (uniform sampling with an injected *rand.Rand)
//	       ↓
//	  [svg] Document (one background rect + one circle per star)
//	       ↓
//	  [render] Renderer (in-process vector rasterizer, or rsvg-convert)
//	       ↓
//	  [io] ExportImage (png, tiff, bmp, jpeg; written atomically)
//
// # Quick Start
//
//	cfg := starfield.DefaultConfig()
//	cfg.StarCount = 500
//
//	field, _ := starfield.Generate(cfg, starfield.NewRand(42))
//	img, _ := render.NewVectorRenderer().Render(ctx, field.Document(), cfg.PixelWidth)
//	_ = io.ExportImage(img, "sky.png", io.FormatPNG)
//
// Or let the pipeline validate, generate, render and write in one call:
//
//	opts := pipeline.DefaultOptions()
//	opts.Output = "sky.png"
//	result, err := pipeline.NewRunner(nil, logger).Execute(ctx, opts)
//
// # Supporting Packages
//
// [errors] - Coded errors (INVALID_PARAMETER, RASTERIZATION_ERROR, IO_ERROR, ...)
// and parameter validation helpers.
//
// [observability] - Stage hooks for metrics backends.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/render/...      # Specific package
//
// Tests that need rsvg-convert skip themselves when it is not installed.
//
// [starfield]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/starfield
// [svg]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/svg
// [render]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/starfield/pkg/buildinfo
package pkg
