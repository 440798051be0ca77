package riso

import "image"

// KernelWeight propagates a fraction of a pixel's quantization error to the
// pixel at the relative offset (DX, DY). DY is never negative: error only
// flows to pixels that have not been visited yet.
type KernelWeight struct {
	DX, DY int
	Weight float64
}

// Kernel is an ordered error-propagation rule set for one diffusion
// algorithm.
type Kernel []KernelWeight

// FloydSteinberg propagates the full quantization error across four
// neighbors.
var FloydSteinberg = Kernel{
	{DX: 1, DY: 0, Weight: 7.0 / 16},
	{DX: -1, DY: 1, Weight: 3.0 / 16},
	{DX: 0, DY: 1, Weight: 5.0 / 16},
	{DX: 1, DY: 1, Weight: 1.0 / 16},
}

// Atkinson propagates 1/8 of the error to each of six neighbors. The
// remaining 2/8 is discarded, which keeps highlights and shadows from
// smearing the way Floyd-Steinberg does.
var Atkinson = Kernel{
	{DX: 1, DY: 0, Weight: 1.0 / 8},
	{DX: 2, DY: 0, Weight: 1.0 / 8},
	{DX: -1, DY: 1, Weight: 1.0 / 8},
	{DX: 0, DY: 1, Weight: 1.0 / 8},
	{DX: 1, DY: 1, Weight: 1.0 / 8},
	{DX: 0, DY: 2, Weight: 1.0 / 8},
}

// ErrorDiffusion quantizes img to the palette by sequential error
// diffusion with the given kernel. Pixels are visited in raster order, top
// to bottom and left to right; this order is a correctness requirement,
// because each pixel is matched against the working value that includes
// error propagated by earlier pixels.
//
// Matching uses the unclamped working value, which can drift outside
// [0, 255] as error accumulates. The buffer is clamped once, at the very
// end, when it is converted to the output image.
func ErrorDiffusion(img image.Image, palette Palette, kernel Kernel) (*image.RGBA, error) {
	if err := validate(img, palette); err != nil {
		return nil, err
	}

	src := ToRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := newWorkingBuffer(src)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			c, _ := palette.Nearest(buf[i], buf[i+1], buf[i+2])

			er := buf[i] - float64(c.R)
			eg := buf[i+1] - float64(c.G)
			eb := buf[i+2] - float64(c.B)

			buf[i] = float64(c.R)
			buf[i+1] = float64(c.G)
			buf[i+2] = float64(c.B)

			propagate(buf, w, h, x, y, er, eg, eb, kernel)
		}
	}

	return workingToImage(buf, b), nil
}

// propagate accumulates error×weight into every in-bounds kernel target.
// Targets are accumulated, not overwritten: several source pixels can feed
// the same coordinate before it is visited.
func propagate(buf []float64, w, h, x, y int, er, eg, eb float64, kernel Kernel) {
	for _, k := range kernel {
		nx, ny := x+k.DX, y+k.DY
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		j := (ny*w + nx) * 3
		buf[j] += er * k.Weight
		buf[j+1] += eg * k.Weight
		buf[j+2] += eb * k.Weight
	}
}

// newWorkingBuffer copies the source pixels into a float64 buffer of
// w×h×3 channels, indexed from the image origin.
func newWorkingBuffer(src *image.RGBA) []float64 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := make([]float64, w*h*3)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			buf[i] = float64(c.R)
			buf[i+1] = float64(c.G)
			buf[i+2] = float64(c.B)
			i += 3
		}
	}
	return buf
}

// workingToImage clamps the buffer to [0, 255] and converts it to an RGBA
// image with the given bounds.
func workingToImage(buf []float64, b image.Rectangle) *image.RGBA {
	out := image.NewRGBA(b)
	w := b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := ((y-b.Min.Y)*w + (x - b.Min.X)) * 3
			out.SetRGBA(x, y, clampRGB(buf[i], buf[i+1], buf[i+2]))
		}
	}
	return out
}
