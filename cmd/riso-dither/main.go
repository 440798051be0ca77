package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/disintegration/gift"
	"github.com/risoworks/riso"
)

var (
	inputPath  = flag.String("i", "", "input image path (default: read from stdin)")
	outputPath = flag.String("o", "", "output image path (default: write PNG to stdout)")
	paletteArg = flag.String("palette", "", "palette as a preset name, palette file, or inline hex list")
	algorithm  = flag.String("algorithm", riso.AlgorithmFloydSteinberg, "dithering algorithm")
	resizeArg  = flag.String("resize", "", "resize to WxH before dithering")
	grayscale  = flag.Bool("grayscale", false, "flatten to grayscale before dithering")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *paletteArg == "" {
		log.Println("Usage: riso-dither --palette <preset|file|#rrggbb,...> [options]")
		log.Println("")
		log.Println("riso-dither reduces an image (PNG, JPEG or GIF) to a fixed set of ink")
		log.Println("colors using dithering and writes the result as PNG. With no -i or -o")
		log.Println("it filters stdin to stdout, so it can sit in a shell pipeline.")
		log.Println("")
		log.Println("Algorithms: " + strings.Join(riso.Algorithms(), ", "))
		log.Println("Presets:    " + strings.Join(riso.PresetNames(), ", "))
		log.Println("")
		log.Println("Options:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	palette, err := riso.ResolvePalette(*paletteArg)
	if err != nil {
		log.Println("Failed to load palette:", err)
		os.Exit(1)
	}

	img := readImage(*inputPath)
	if filters := preprocessing(); len(filters) > 0 {
		g := gift.New(filters...)
		resized := image.NewRGBA(g.Bounds(img.Bounds()))
		g.Draw(resized, img)
		img = resized
	}

	result, err := riso.Dither(img, palette, *algorithm)
	if err != nil {
		log.Println("Failed to dither image:", err)
		os.Exit(1)
	}

	writePNG(*outputPath, result)
}

func preprocessing() []gift.Filter {
	var filters []gift.Filter
	if *resizeArg != "" {
		w, h, ok := parseSize(*resizeArg)
		if !ok {
			log.Println("Invalid -resize value, expected WxH such as 800x600.")
			os.Exit(1)
		}
		filters = append(filters, gift.Resize(w, h, gift.LanczosResampling))
	}
	if *grayscale {
		filters = append(filters, gift.Grayscale())
	}
	return filters
}

func parseSize(s string) (w, h int, ok bool) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
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

func writePNG(path string, img image.Image) {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Println("Failed to create output file:", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := png.Encode(out, img); err != nil {
		log.Println("Failed to encode output image:", err)
		os.Exit(1)
	}
}
