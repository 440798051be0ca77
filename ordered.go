package riso

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Bayer threshold matrices, normalized to [0, 1). Process-wide constants;
// never mutated after initialization.
var bayer = map[int][][]float64{
	2: normalizeMatrix([][]float64{
		{0, 2},
		{3, 1},
	}, 4),
	4: normalizeMatrix([][]float64{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	}, 16),
	8: normalizeMatrix([][]float64{
		{0, 32, 8, 40, 2, 34, 10, 42},
		{48, 16, 56, 24, 50, 18, 58, 26},
		{12, 44, 4, 36, 14, 46, 6, 38},
		{60, 28, 52, 20, 62, 30, 54, 22},
		{3, 35, 11, 43, 1, 33, 9, 41},
		{51, 19, 59, 27, 49, 17, 57, 25},
		{15, 47, 7, 39, 13, 45, 5, 37},
		{63, 31, 55, 23, 61, 29, 53, 21},
	}, 64),
}

func normalizeMatrix(m [][]float64, denom float64) [][]float64 {
	for _, row := range m {
		for i := range row {
			row[i] /= denom
		}
	}
	return m
}

// Ordered quantizes img to the palette using Bayer ordered dithering with
// the threshold matrix of the given size (2, 4 or 8). Unrecognized sizes
// fall back to the 4x4 matrix.
//
// Every pixel is independent, so rows are processed by parallel workers.
// The matrix is indexed by absolute image coordinates, which makes the
// result identical no matter how the image is partitioned: dithering a
// sub-image produces exactly the pixels the full image would.
func Ordered(img image.Image, palette Palette, size int) (*image.RGBA, error) {
	if err := validate(img, palette); err != nil {
		return nil, err
	}

	m, ok := bayer[size]
	if !ok {
		m = bayer[4]
	}
	n := len(m)

	src := ToRGBA(img)
	b := src.Bounds()
	out := image.NewRGBA(b)

	band := (b.Dy() + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	if band < 1 {
		band = 1
	}

	var g errgroup.Group
	for start := b.Min.Y; start < b.Max.Y; start += band {
		start := start
		end := start + band
		if end > b.Max.Y {
			end = b.Max.Y
		}
		g.Go(func() error {
			orderedRows(src, out, palette, m, n, start, end)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func orderedRows(src, out *image.RGBA, palette Palette, m [][]float64, n, yMin, yMax int) {
	b := src.Bounds()
	for y := yMin; y < yMax; y++ {
		row := m[mod(y, n)]
		for x := b.Min.X; x < b.Max.X; x++ {
			t := row[mod(x, n)] * 255
			c := src.RGBAAt(x, y)
			q, _ := palette.Nearest(
				float64(c.R)+t-128,
				float64(c.G)+t-128,
				float64(c.B)+t-128,
			)
			out.SetRGBA(x, y, q)
		}
	}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
