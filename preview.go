package riso

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultInks is the ink set used for previews when no colors are given:
// Riso pink, blue, yellow and green.
var DefaultInks = []color.RGBA{
	{R: 255, G: 0, B: 128, A: 255},
	{R: 0, G: 120, B: 191, A: 255},
	{R: 255, G: 232, B: 0, A: 255},
	{R: 0, G: 169, B: 92, A: 255},
}

// Overprint composites grayscale plates into a print preview. Each plate is
// tinted with its ink color (0 = full ink, 255 = bare paper) and blended
// over a white base with a multiply blend, which is how overlapping
// translucent Riso inks behave on paper.
func Overprint(plates []*image.Gray, inks []color.RGBA) (*image.RGBA, error) {
	if len(plates) == 0 {
		return nil, errors.New("riso: overprint needs at least one layer")
	}
	if len(inks) < len(plates) {
		return nil, errors.New("riso: overprint needs one ink color per layer")
	}
	b := plates[0].Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}
	for _, p := range plates[1:] {
		if p.Bounds().Dx() != b.Dx() || p.Bounds().Dy() != b.Dy() {
			return nil, errors.New("riso: overprint layers must have identical dimensions")
		}
	}

	w, h := b.Dx(), b.Dy()
	acc := make([]float64, w*h*3)
	for i := range acc {
		acc[i] = 255
	}

	for li, p := range plates {
		ink := inks[li]
		pb := p.Bounds()
		i := 0
		for y := pb.Min.Y; y < pb.Max.Y; y++ {
			for x := pb.Min.X; x < pb.Max.X; x++ {
				intensity := 1 - float64(p.GrayAt(x, y).Y)/255
				tintR := (1-intensity)*255 + intensity*float64(ink.R)
				tintG := (1-intensity)*255 + intensity*float64(ink.G)
				tintB := (1-intensity)*255 + intensity*float64(ink.B)
				acc[i] *= tintR / 255
				acc[i+1] *= tintG / 255
				acc[i+2] *= tintB / 255
				i += 3
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.SetRGBA(x, y, clampRGB(acc[i], acc[i+1], acc[i+2]))
			i += 3
		}
	}
	return out, nil
}

// Swatches renders one filled square per ink with a black outline, in a
// single horizontal strip.
func Swatches(inks []color.RGBA, size int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, size*len(inks), size))
	black := color.RGBA{A: 255}
	for i, ink := range inks {
		x0 := i * size
		draw.Draw(out, image.Rect(x0, 0, x0+size, size), image.NewUniform(ink), image.Point{}, draw.Src)
		for d := 0; d < size; d++ {
			out.SetRGBA(x0+d, 0, black)
			out.SetRGBA(x0+d, size-1, black)
			out.SetRGBA(x0, d, black)
			out.SetRGBA(x0+size-1, d, black)
		}
	}
	return out
}

// StackVertical centers the given images on a white canvas, top to bottom,
// with the given gap between them.
func StackVertical(gap int, images ...image.Image) *image.RGBA {
	width, height := 0, 0
	for i, img := range images {
		if w := img.Bounds().Dx(); w > width {
			width = w
		}
		height += img.Bounds().Dy()
		if i > 0 {
			height += gap
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	y := 0
	for _, img := range images {
		b := img.Bounds()
		x := (width - b.Dx()) / 2
		draw.Draw(out, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy() + gap
	}
	return out
}

// Caption extends the image downward by a white band and writes the text
// into it.
func Caption(img image.Image, text string) *image.RGBA {
	const bandHeight = 40

	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+bandHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, b.Dx(), b.Dy()), img, b.Min, draw.Src)

	d := font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(20, b.Dy()+25),
	}
	d.DrawString(text)
	return out
}
