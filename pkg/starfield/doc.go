// Package starfield samples a procedural star field.
//
// # Overview
//
// A star field is a dark rectangular canvas with a fixed number of white
// discs scattered over it. Every star is sampled independently:
//
//	x ~ U(0, width)      y ~ U(0, height)
//	r ~ U(radius.min, radius.max)
//	a ~ U(opacity.min, opacity.max)
//
// where height = width / aspect_ratio. There is no rejection step: stars may
// overlap and stars near the border are clipped by it.
//
// # Usage
//
//	cfg := starfield.DefaultConfig()
//	cfg.StarCount = 500
//
//	field, err := starfield.Generate(cfg, starfield.NewRand(cfg.Seed))
//	if err != nil {
//	    return err
//	}
//	doc := field.Document() // *svg.Document, ready for a renderer
//
// # Randomness
//
// The random source is always passed in. [NewRand] with seed 0 draws a fresh
// seed from the runtime, which is the production default; any other seed
// reproduces the same field exactly.
package starfield
