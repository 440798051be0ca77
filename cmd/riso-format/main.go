package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/risoworks/riso/layout"
)

var (
	inputPath  = flag.String("i", "", "input layer image (default: read from stdin)")
	outputPath = flag.String("o", "", "output PDF path (default: write to stdout)")
	dpi        = flag.Float64("dpi", 600, "resolution used to size the image on the page")
	fitMode    = flag.String("fit", "none", "fit mode (none, contain, cover)")
	position   = flag.String("position", "center", "placement on the page (center, top-left)")
	cropMarks  = flag.Bool("cropmarks", true, "draw crop marks at the printable area corners")
	bleed      = flag.Float64("bleed", 0, "bleed allowance in millimetres")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	opts := layout.FormatOptions{
		DPI:       *dpi,
		CropMarks: *cropMarks,
		Bleed:     *bleed,
	}

	switch *fitMode {
	case "none":
		opts.Fit = layout.FitNone
	case "contain":
		opts.Fit = layout.FitContain
	case "cover":
		opts.Fit = layout.FitCover
	default:
		log.Println("Unknown fit mode:", *fitMode)
		os.Exit(1)
	}

	switch *position {
	case "center":
		opts.Position = layout.PositionCenter
	case "top-left":
		opts.Position = layout.PositionTopLeft
	default:
		log.Println("Unknown position:", *position)
		os.Exit(1)
	}

	img := readImage(*inputPath)

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Println("Failed to create output file:", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := layout.Format(out, img, opts); err != nil {
		log.Println("Failed to write PDF:", err)
		os.Exit(1)
	}
}

func readImage(path string) image.Image {
	in := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Println("Failed to open image:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	img, _, err := image.Decode(in)
	if err != nil {
		log.Println("Failed to decode image:", err)
		os.Exit(1)
	}
	return img
}
