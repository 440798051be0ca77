package riso

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestDitherAlgorithms(t *testing.T) {
	p := Palette{black, white, red}
	src := testImage(12, 12, 13)

	for _, name := range Algorithms() {
		t.Run(name, func(t *testing.T) {
			out, err := Dither(src, p, name)
			if err != nil {
				t.Fatal(err)
			}
			assertPaletteClosure(t, out, p)
			if out.Bounds() != src.Bounds() {
				t.Errorf("bounds = %v, want %v", out.Bounds(), src.Bounds())
			}
		})
	}
}

func TestDitherUnknownAlgorithm(t *testing.T) {
	_, err := Dither(testImage(4, 4, 1), Palette{black, white}, "bogus")
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("got %v, want ErrUnknownAlgorithm", err)
	}
}

// Grayscale sources are expanded to RGBA with Y replicated into each
// channel before matching.
func TestDitherGrayscaleInput(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(x * 32)})
		}
	}

	p := Palette{black, white}
	out, err := Dither(src, p, AlgorithmFloydSteinberg)
	if err != nil {
		t.Fatal(err)
	}
	assertPaletteClosure(t, out, p)
}

func TestAlgorithmsList(t *testing.T) {
	want := map[string]bool{
		AlgorithmFloydSteinberg: false,
		AlgorithmAtkinson:       false,
		AlgorithmOrdered2x2:     false,
		AlgorithmOrdered4x4:     false,
		AlgorithmOrdered8x8:     false,
	}
	for _, name := range Algorithms() {
		seen, ok := want[name]
		if !ok {
			t.Errorf("unexpected algorithm %q", name)
		}
		if seen {
			t.Errorf("algorithm %q listed twice", name)
		}
		want[name] = true
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("algorithm %q missing", name)
		}
	}
}
