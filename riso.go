// Package riso prepares continuous-tone images for Risograph printing:
// it reduces them to a small set of ink colors using dithering, separates
// flat-color images into per-ink layers, and composites overprint previews.
package riso

import (
	"errors"
	"fmt"
	"image"
)

// Errors reported before any pixel is processed. An engine never returns a
// partially quantized image: on error the output is nil.
var (
	ErrEmptyPalette     = errors.New("riso: palette must contain at least one color")
	ErrInvalidImage     = errors.New("riso: image must have positive width and height")
	ErrUnknownAlgorithm = errors.New("riso: unknown dithering algorithm")
)

// Algorithm names accepted by Dither.
const (
	AlgorithmFloydSteinberg = "floyd-steinberg"
	AlgorithmAtkinson       = "atkinson"
	AlgorithmOrdered2x2     = "ordered-2x2"
	AlgorithmOrdered4x4     = "ordered-4x4"
	AlgorithmOrdered8x8     = "ordered-8x8"
)

// Algorithms returns the names of all supported dithering algorithms.
func Algorithms() []string {
	return []string{
		AlgorithmFloydSteinberg,
		AlgorithmAtkinson,
		AlgorithmOrdered2x2,
		AlgorithmOrdered4x4,
		AlgorithmOrdered8x8,
	}
}

// Dither quantizes img to the given palette using the named algorithm.
// The result has the same bounds as the input and every pixel is exactly
// one of the palette entries. Grayscale inputs are widened to RGB before
// processing.
func Dither(img image.Image, palette Palette, algorithm string) (*image.RGBA, error) {
	switch algorithm {
	case AlgorithmFloydSteinberg:
		return ErrorDiffusion(img, palette, FloydSteinberg)
	case AlgorithmAtkinson:
		return ErrorDiffusion(img, palette, Atkinson)
	case AlgorithmOrdered2x2:
		return Ordered(img, palette, 2)
	case AlgorithmOrdered4x4:
		return Ordered(img, palette, 4)
	case AlgorithmOrdered8x8:
		return Ordered(img, palette, 8)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

func validate(img image.Image, palette Palette) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return ErrInvalidImage
	}
	return nil
}
