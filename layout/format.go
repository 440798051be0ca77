// Package layout produces print-ready PDFs from separated Riso layers:
// single plates formatted for the press, and saddle-stitch booklet sheets.
package layout

import (
	"fmt"
	goimage "image"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/image"

	"github.com/risoworks/riso"
)

// mm converts millimeters to PDF points.
const mm = 72.0 / 25.4

// Paper sizes.
var (
	A3 = &pdf.Rectangle{URx: 297 * mm, URy: 420 * mm}
	A4 = &pdf.Rectangle{URx: 210 * mm, URy: 297 * mm}
)

// Printable area of an A3 sheet on a Risograph (289 x 409 mm).
const (
	printableWidth  = 289 * mm
	printableHeight = 409 * mm
)

// FitMode selects how an image is scaled onto the page.
type FitMode string

const (
	// FitNone keeps the image at its native resolution, interpreted at
	// the configured DPI.
	FitNone FitMode = "none"
	// FitContain scales the image to fit inside the printable area.
	FitContain FitMode = "contain"
	// FitCover scales the image to fill the printable area completely.
	FitCover FitMode = "cover"
)

// Position selects where the image sits on the page.
type Position string

const (
	PositionCenter  Position = "center"
	PositionTopLeft Position = "top-left"
)

// FormatOptions controls Format.
type FormatOptions struct {
	DPI       float64 // resolution for FitNone; 0 means 600
	Fit       FitMode // zero value means FitContain
	Position  Position
	CropMarks bool
	Bleed     float64 // bleed allowance in millimeters
}

// Format writes a single-page A3 PDF containing the image as a grayscale
// printing plate. Color inputs are flattened to grayscale first; the press
// prints every plate in one ink.
func Format(w io.Writer, img goimage.Image, opts FormatOptions) error {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return riso.ErrInvalidImage
	}

	if opts.DPI == 0 {
		opts.DPI = 600
	}
	if opts.Fit == "" {
		opts.Fit = FitContain
	}
	if opts.Position == "" {
		opts.Position = PositionCenter
	}

	iw, ih := float64(b.Dx()), float64(b.Dy())
	pageW, pageH := A3.URx, A3.URy

	var dispW, dispH float64
	switch opts.Fit {
	case FitNone:
		// PDF user space is 72 units per inch.
		scale := opts.DPI / 72
		dispW, dispH = iw/scale, ih/scale
	case FitContain:
		s := printableWidth / iw
		if t := printableHeight / ih; t < s {
			s = t
		}
		dispW, dispH = iw*s, ih*s
	case FitCover:
		s := printableWidth / iw
		if t := printableHeight / ih; t > s {
			s = t
		}
		dispW, dispH = iw*s, ih*s
	default:
		return fmt.Errorf("layout: unknown fit mode %q", opts.Fit)
	}

	var x, y float64
	switch opts.Position {
	case PositionTopLeft:
		x = (pageW - printableWidth) / 2
		y = pageH - (pageH-printableHeight)/2 - dispH
	default:
		x = (pageW - dispW) / 2
		y = (pageH - dispH) / 2
	}

	doc, err := document.WriteMultiPage(w, A3, pdf.V1_7, nil)
	if err != nil {
		return err
	}
	page := doc.AddPage()

	plate := &image.PNG{Data: riso.ToRGBA(riso.ToGray(img))}
	drawImage(page, plate, x, y, dispW, dispH)

	if opts.CropMarks {
		bleed := opts.Bleed * mm
		addCropMarks(page, x+bleed, y+bleed, dispW-2*bleed, dispH-2*bleed)
	}

	if err := page.Close(); err != nil {
		return err
	}
	return doc.Close()
}

// drawImage paints an image XObject into the axis-aligned rectangle with
// lower-left corner (x, y). Image XObjects cover the unit square, so the
// transform carries both size and placement; the vertical flip accounts
// for image data being stored top row first.
func drawImage(page *document.Page, img *image.PNG, x, y, w, h float64) {
	page.PushGraphicsState()
	M := matrix.Scale(w, -h)
	M = M.Mul(matrix.Translate(x, y+h))
	page.Transform(M)
	page.DrawXObject(img)
	page.PopGraphicsState()
}

// addCropMarks draws the eight trim marks around the content rectangle:
// 5 mm hairlines offset 3 mm from each corner.
func addCropMarks(page *document.Page, x, y, w, h float64) {
	const (
		markLength = 5 * mm
		markOffset = 3 * mm
	)

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.5)

	lines := [][4]float64{
		// top-left
		{x - markOffset - markLength, y + h, x - markOffset, y + h},
		{x, y + h + markOffset, x, y + h + markOffset + markLength},
		// top-right
		{x + w + markOffset, y + h, x + w + markOffset + markLength, y + h},
		{x + w, y + h + markOffset, x + w, y + h + markOffset + markLength},
		// bottom-left
		{x - markOffset - markLength, y, x - markOffset, y},
		{x, y - markOffset, x, y - markOffset - markLength},
		// bottom-right
		{x + w + markOffset, y, x + w + markOffset + markLength, y},
		{x + w, y - markOffset, x + w, y - markOffset - markLength},
	}
	for _, l := range lines {
		page.MoveTo(l[0], l[1])
		page.LineTo(l[2], l[3])
		page.Stroke()
	}
}
