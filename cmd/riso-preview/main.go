package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/risoworks/riso"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var (
	layerPaths stringList
	directory  = flag.String("d", "", "directory containing layers and a colormap")
	colorsArg  = flag.String("c", "", "ink colors as comma-separated hex values")
	outputPath = flag.String("o", "", "output image path (default: write PNG to stdout)")
	swatches   = flag.Bool("swatches", true, "include a color swatch strip")
	labels     = flag.Bool("labels", true, "include a color label caption")
)

func main() {
	flag.Var(&layerPaths, "l", "layer image file (repeat for multiple layers)")
	flag.Parse()
	log.SetFlags(0)

	plates, inks, names := loadLayers()
	if len(plates) == 0 {
		log.Println("No layer images found. Specify either -d or one or more -l flags.")
		os.Exit(1)
	}

	// Pad missing ink assignments from the default set.
	for i := len(inks); i < len(plates); i++ {
		inks = append(inks, riso.DefaultInks[i%len(riso.DefaultInks)])
		names = append(names, fmt.Sprintf("Layer %d", i+1))
	}

	preview, err := riso.Overprint(plates, inks)
	if err != nil {
		log.Println("Failed to composite preview:", err)
		os.Exit(1)
	}

	var result image.Image = preview
	if *swatches {
		result = riso.StackVertical(20, preview, riso.Swatches(inks[:len(plates)], 50))
	}
	if *labels {
		result = riso.Caption(result, strings.Join(names[:len(plates)], " + "))
	}

	writePNG(*outputPath, result)
}

// loadLayers gathers the grayscale plates plus any ink colors and labels
// that come with them.
func loadLayers() (plates []*image.Gray, inks []color.RGBA, names []string) {
	switch {
	case *directory != "":
		plates, inks, names = loadDirectory(*directory)
	case len(layerPaths) > 0:
		for _, path := range layerPaths {
			plates = append(plates, riso.ToGray(readImage(path)))
		}
	}

	if *colorsArg != "" && len(inks) == 0 {
		palette, err := riso.ParsePalette(*colorsArg)
		if err != nil {
			log.Println("Failed to parse colors:", err)
			os.Exit(1)
		}
		for _, c := range palette {
			inks = append(inks, c)
			names = append(names, riso.HexColor(c))
		}
	}
	return plates, inks, names
}

// loadDirectory reads layers through the colormap manifest when one is
// present, and falls back to every PNG in the directory otherwise.
func loadDirectory(dir string) (plates []*image.Gray, inks []color.RGBA, names []string) {
	matches, _ := filepath.Glob(filepath.Join(dir, "*colormap.json"))
	if len(matches) > 0 {
		f, err := os.Open(matches[0])
		if err != nil {
			log.Println("Failed to open color map:", err)
			os.Exit(1)
		}
		defer f.Close()

		m, err := riso.DecodeColorMap(f)
		if err != nil {
			log.Println("Failed to parse color map:", err)
			os.Exit(1)
		}
		for _, entry := range m.Layers {
			path := filepath.Join(dir, entry.Filename)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			plates = append(plates, riso.ToGray(readImage(path)))
			inks = append(inks, entry.Color.RGBA())
			names = append(names, entry.Color.Hex)
		}
		return plates, inks, names
	}

	paths, _ := filepath.Glob(filepath.Join(dir, "*.png"))
	sort.Strings(paths)
	for _, path := range paths {
		if strings.Contains(filepath.Base(path), "preview") {
			continue
		}
		plates = append(plates, riso.ToGray(readImage(path)))
	}
	return plates, nil, nil
}

func readImage(path string) image.Image {
	f, err := os.Open(path)
	if err != nil {
		log.Println("Failed to open image:", err)
		os.Exit(1)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
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
