package layout

import (
	"fmt"
	goimage "image"
	"io"
	"math"
	"sort"

	"github.com/disintegration/gift"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/font"
	"seehuhn.de/go/pdf/font/standard"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/image"

	"github.com/risoworks/riso"
)

// PlacedImage is one image placed on a booklet page. X and Y locate the
// image's top-left corner within the page slot, in points, with Y growing
// downward (layout-editor coordinates).
type PlacedImage struct {
	Image    goimage.Image
	X, Y     float64
	Width    float64
	Height   float64 // <= 0 derives the height from the aspect ratio
	Rotation float64 // degrees, applied about the image center
	FlipX    bool
}

// Booklet is an 8-page saddle-stitch booklet imposed onto the front and
// back of a single sheet, four page slots per side in a 2x2 grid. Folding
// the printed sheet twice yields correctly ordered pages.
type Booklet struct {
	Paper       string                // "A4" (default) or "A3"
	Orientation string                // "landscape" (default) or "portrait"
	Pages       map[int][]PlacedImage // keyed by booklet page number 1-8
}

// Slot grid positions per sheet side. The column/row pairs put each
// booklet page where the double fold expects it.
var bookletSides = [2]map[int]goimage.Point{
	{8: {0, 1}, 1: {1, 1}, 4: {0, 0}, 5: {1, 0}}, // front
	{2: {0, 1}, 7: {1, 1}, 6: {0, 0}, 3: {1, 0}}, // back
}

// Render writes the two imposed sheet sides as a PDF.
func (bk *Booklet) Render(w io.Writer) error {
	var paper *pdf.Rectangle
	switch bk.Paper {
	case "", "A4":
		paper = A4
	case "A3":
		paper = A3
	default:
		return fmt.Errorf("layout: unknown paper size %q", bk.Paper)
	}

	sheet := paper
	if bk.Orientation != "portrait" {
		sheet = &pdf.Rectangle{URx: paper.URy, URy: paper.URx}
	}
	slotW, slotH := sheet.URx/2, sheet.URy/2

	doc, err := document.WriteMultiPage(w, sheet, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	label := standard.Helvetica.New()

	for _, side := range bookletSides {
		page := doc.AddPage()

		nums := make([]int, 0, len(side))
		for num := range side {
			nums = append(nums, num)
		}
		sort.Ints(nums)

		for _, num := range nums {
			pos := side[num]
			x := float64(pos.X) * slotW
			y := float64(pos.Y) * slotH

			drawSlotFrame(page, label, num, x, y, slotW, slotH)
			for _, placed := range bk.Pages[num] {
				if err := drawPlaced(page, placed, x, y, slotW, slotH); err != nil {
					return err
				}
			}
		}

		if err := page.Close(); err != nil {
			return err
		}
	}
	return doc.Close()
}

// drawSlotFrame strokes the slot border and writes a small page-number
// label, both in light gray so they read as reference marks.
func drawSlotFrame(page *document.Page, label font.Layouter, num int, x, y, w, h float64) {
	page.SetStrokeColor(color.DeviceRGB(0.8, 0.8, 0.8))
	page.SetLineWidth(1)
	page.Rectangle(x, y, w, h)
	page.Stroke()

	page.SetFillColor(color.DeviceRGB(0.7, 0.7, 0.7))
	page.TextSetFont(label, 8)
	page.TextBegin()
	page.TextFirstLine(x+5, y+h-15)
	page.TextShow(fmt.Sprintf("Page %d", num))
	page.TextEnd()
}

func drawPlaced(page *document.Page, placed PlacedImage, slotX, slotY, slotW, slotH float64) error {
	if placed.Image == nil || placed.Width <= 0 {
		return nil
	}

	src := placed.Image
	if placed.FlipX {
		src = flipHorizontal(src)
	}

	b := src.Bounds()
	width := placed.Width
	height := placed.Height
	if height <= 0 {
		height = width * float64(b.Dy()) / float64(b.Dx())
	}

	x := slotX + placed.X
	y := slotY + slotH - placed.Y - height

	page.PushGraphicsState()
	defer page.PopGraphicsState()

	// Content must not spill into neighboring slots.
	page.Rectangle(slotX, slotY, slotW, slotH)
	page.ClipNonZero()
	page.EndPath()

	if placed.Rotation != 0 {
		cx := x + width/2
		cy := y + height/2
		phi := placed.Rotation * math.Pi / 180
		M := matrix.Translate(-cx, -cy)
		M = M.Mul(matrix.Rotate(phi))
		M = M.Mul(matrix.Translate(cx, cy))
		page.Transform(M)
	}

	drawImage(page, &image.PNG{Data: riso.ToRGBA(src)}, x, y, width, height)
	return nil
}

func flipHorizontal(img goimage.Image) goimage.Image {
	g := gift.New(gift.FlipHorizontal())
	out := goimage.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(out, img)
	return out
}
