package riso

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

// Layer is one ink separation: a grayscale plate where 0 means ink and 255
// means bare paper, plus the ink color it stands for and the fraction of
// the image it covers.
type Layer struct {
	Image    *image.Gray
	Color    color.RGBA
	Coverage float64 // percent of pixels carrying this ink
}

// SeparateOptions controls Separate.
type SeparateOptions struct {
	// MaxColors limits how many layers may be produced. Zero means no limit.
	MaxColors int
	// Quantize reduces the image to MaxColors dominant colors when it has
	// more distinct colors than allowed. When false, such images are an
	// error instead.
	Quantize bool
}

// Separate splits a flat-color image (typically a dithering result) into
// one grayscale printing plate per color. Layers for quantized images are
// ordered by dominance, most-used color first; otherwise colors appear in
// first-seen scan order.
func Separate(img image.Image, opts SeparateOptions) ([]Layer, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrInvalidImage
	}

	src := ToRGBA(img)
	colors := UniqueColors(src)
	if opts.MaxColors > 0 && len(colors) > opts.MaxColors {
		if !opts.Quantize {
			return nil, fmt.Errorf("riso: image has %d colors, more than the %d allowed", len(colors), opts.MaxColors)
		}
		src, colors = quantizeImage(src, opts.MaxColors)
	}

	total := float64(b.Dx() * b.Dy())
	layers := make([]Layer, 0, len(colors))
	for _, ink := range colors {
		plate := image.NewGray(b)
		covered := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := src.RGBAAt(x, y)
				if c.R == ink.R && c.G == ink.G && c.B == ink.B {
					plate.SetGray(x, y, color.Gray{Y: 0})
					covered++
				} else {
					plate.SetGray(x, y, color.Gray{Y: 255})
				}
			}
		}
		layers = append(layers, Layer{
			Image:    plate,
			Color:    ink,
			Coverage: float64(covered) / total * 100,
		})
	}
	return layers, nil
}

// UniqueColors returns the distinct colors of img in first-seen scan order.
func UniqueColors(img image.Image) []color.RGBA {
	src := ToRGBA(img)
	b := src.Bounds()
	seen := make(map[color.RGBA]bool)
	var colors []color.RGBA
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			c.A = 255
			if !seen[c] {
				seen[c] = true
				colors = append(colors, c)
			}
		}
	}
	return colors
}

// quantizeImage reduces src to at most n colors with a median-cut quantizer
// and remaps every pixel to its nearest center. The returned colors are
// ordered by pixel count, most dominant first.
func quantizeImage(src *image.RGBA, n int) (*image.RGBA, []color.RGBA) {
	q := quantize.MedianCutQuantizer{}
	centers := q.Quantize(make(color.Palette, 0, n), src)

	pal := make(Palette, len(centers))
	for i, c := range centers {
		pal[i] = color.RGBAModel.Convert(c).(color.RGBA)
		pal[i].A = 255
	}

	b := src.Bounds()
	out := image.NewRGBA(b)
	counts := make([]int, len(pal))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			matched, i := pal.Nearest(float64(c.R), float64(c.G), float64(c.B))
			out.SetRGBA(x, y, matched)
			counts[i]++
		}
	}

	order := make([]int, len(pal))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	sorted := make([]color.RGBA, 0, len(pal))
	for _, i := range order {
		if counts[i] > 0 {
			sorted = append(sorted, pal[i])
		}
	}
	return out, sorted
}

// ColorMap records which ink each layer file stands for. It is written next
// to the layer images so downstream tools (preview, formatting) can match
// plates back to inks.
type ColorMap struct {
	Layers []ColorMapLayer `json:"layers"`
}

// ColorMapLayer is one entry of a ColorMap.
type ColorMapLayer struct {
	Index    int           `json:"index"`
	Color    ColorMapColor `json:"color"`
	Filename string        `json:"filename"`
}

// ColorMapColor is a color in both RGB and hex form.
type ColorMapColor struct {
	RGB [3]int `json:"rgb"`
	Hex string `json:"hex"`
}

// NewColorMap builds the manifest for a set of layers whose files are named
// prefix1.png, prefix2.png, and so on.
func NewColorMap(layers []Layer, prefix string) *ColorMap {
	m := &ColorMap{Layers: make([]ColorMapLayer, 0, len(layers))}
	for i, layer := range layers {
		m.Layers = append(m.Layers, ColorMapLayer{
			Index: i + 1,
			Color: ColorMapColor{
				RGB: [3]int{int(layer.Color.R), int(layer.Color.G), int(layer.Color.B)},
				Hex: HexColor(layer.Color),
			},
			Filename: fmt.Sprintf("%s%d.png", prefix, i+1),
		})
	}
	return m
}

// Encode writes the color map as indented JSON.
func (m *ColorMap) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// DecodeColorMap reads a color map written by Encode.
func DecodeColorMap(r io.Reader) (*ColorMap, error) {
	var m ColorMap
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// RGBA returns the entry's color as a color.RGBA.
func (c ColorMapColor) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.RGB[0]), G: uint8(c.RGB[1]), B: uint8(c.RGB[2]), A: 255}
}
