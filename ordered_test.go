package riso

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOrderedValidation(t *testing.T) {
	img := testImage(4, 4, 1)

	if _, err := Ordered(img, nil, 4); err != ErrEmptyPalette {
		t.Errorf("empty palette: got %v, want ErrEmptyPalette", err)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Ordered(empty, Palette{black, white}, 4); err != ErrInvalidImage {
		t.Errorf("zero-area image: got %v, want ErrInvalidImage", err)
	}
}

func TestOrderedClosure(t *testing.T) {
	p := Palette{black, white, red, blue}
	for _, size := range []int{2, 4, 8} {
		out, err := Ordered(testImage(30, 19, 2), p, size)
		if err != nil {
			t.Fatal(err)
		}
		assertPaletteClosure(t, out, p)
	}
}

func TestOrderedDeterministic(t *testing.T) {
	p := Palette{black, white, red}
	a, err := Ordered(testImage(40, 40, 6), p, 8)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Ordered(testImage(40, 40, 6), p, 8)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a.Pix, b.Pix); diff != "" {
		t.Errorf("two runs over the same input differ (-first +second):\n%s", diff)
	}
}

// An unknown matrix size behaves exactly like 4x4 rather than failing.
func TestOrderedFallbackSize(t *testing.T) {
	p := Palette{black, white}
	src := testImage(16, 16, 4)

	want, err := Ordered(src, p, 4)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Ordered(src, p, 3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want.Pix, got.Pix); diff != "" {
		t.Errorf("size 3 should fall back to the 4x4 matrix (-4x4 +fallback):\n%s", diff)
	}
}

// Ordered dithering has no inter-pixel state, so dithering two halves of an
// image separately must produce the same pixels as dithering the whole.
func TestOrderedPartitionInvariance(t *testing.T) {
	p := Palette{black, white, red, blue}
	src := testImage(64, 64, 8)

	whole, err := Ordered(src, p, 4)
	if err != nil {
		t.Fatal(err)
	}

	left, err := Ordered(src.SubImage(image.Rect(0, 0, 32, 64)).(*image.RGBA), p, 4)
	if err != nil {
		t.Fatal(err)
	}
	right, err := Ordered(src.SubImage(image.Rect(32, 0, 64, 64)).(*image.RGBA), p, 4)
	if err != nil {
		t.Fatal(err)
	}

	for _, half := range []*image.RGBA{left, right} {
		b := half.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if got, want := half.RGBAAt(x, y), whole.RGBAAt(x, y); got != want {
					t.Fatalf("pixel (%d, %d) = %v in half, %v in whole", x, y, got, want)
				}
			}
		}
	}
}

func TestOrderedMatrixNormalization(t *testing.T) {
	for size, m := range bayer {
		if len(m) != size {
			t.Errorf("size %d matrix has %d rows", size, len(m))
		}
		for _, row := range m {
			if len(row) != size {
				t.Errorf("size %d matrix has a row of length %d", size, len(row))
			}
			for _, v := range row {
				if v < 0 || v >= 1 {
					t.Errorf("size %d matrix value %v outside [0, 1)", size, v)
				}
			}
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 4, 0},
		{5, 4, 1},
		{-1, 4, 3},
		{-8, 4, 0},
	}
	for _, tt := range tests {
		if got := mod(tt.v, tt.n); got != tt.want {
			t.Errorf("mod(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}
