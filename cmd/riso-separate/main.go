package main

import (
	"flag"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/risoworks/riso"
)

var (
	inputPath = flag.String("i", "", "input image path (default: read from stdin)")
	outputDir = flag.String("output-dir", "", "directory for layer files (default: current directory)")
	prefix    = flag.String("output-prefix", "layer_", "prefix for output files")
	maxColors = flag.Int("max-colors", 8, "maximum number of colors to separate")
	quantize  = flag.Bool("quantize", true, "reduce the image to max-colors dominant colors if needed")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	img := readImage(*inputPath)

	layers, err := riso.Separate(img, riso.SeparateOptions{
		MaxColors: *maxColors,
		Quantize:  *quantize,
	})
	if err != nil {
		log.Println("Failed to separate image:", err)
		os.Exit(1)
	}

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			log.Println("Failed to create output directory:", err)
			os.Exit(1)
		}
	}

	colorMap := riso.NewColorMap(layers, *prefix)
	mapPath := filepath.Join(*outputDir, *prefix+"colormap.json")
	writeColorMap(mapPath, colorMap)
	log.Println("Saved color map:", mapPath)

	for i, layer := range layers {
		log.Printf("Layer %d: %s (%.1f%% coverage)", i+1, riso.HexColor(layer.Color), layer.Coverage)
		writePNG(filepath.Join(*outputDir, colorMap.Layers[i].Filename), layer.Image)
	}
}

func writeColorMap(path string, m *riso.ColorMap) {
	f, err := os.Create(path)
	if err != nil {
		log.Println("Failed to create color map:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := m.Encode(f); err != nil {
		log.Println("Failed to write color map:", err)
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

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		log.Println("Failed to create layer file:", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Println("Failed to encode layer:", err)
		os.Exit(1)
	}
}
