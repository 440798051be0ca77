package main

import (
	"bytes"
	"encoding/base64"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"github.com/lmittmann/tint"
	"github.com/risoworks/riso"
	"github.com/risoworks/riso/layout"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var (
	listenAddr  = flag.String("listen", ":9090", "address to listen on")
	palettesDir = flag.String("palettes", "", "directory of additional .txt palette files")
)

// bookletRequest mirrors the JSON body of POST /api/booklet. Page keys are
// booklet page numbers as strings, matching what JSON objects allow.
type bookletRequest struct {
	PaperSize   string                   `json:"paperSize"`
	Orientation string                   `json:"orientation"`
	Pages       map[string][]placedImage `json:"pages"`
}

type placedImage struct {
	Src      string    `json:"src"` // data URL
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   dimension `json:"height"` // number or "auto"
	Rotation float64   `json:"rotation"`
	ScaleX   float64   `json:"scaleX"` // -1 mirrors horizontally
}

// dimension accepts either a number or the string "auto" (decoded as zero).
type dimension float64

func (d *dimension) UnmarshalJSON(data []byte) error {
	if string(data) == `"auto"` {
		*d = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid dimension %s", data)
	}
	*d = dimension(v)
	return nil
}

func main() {
	flag.Parse()
	log.SetFlags(0)

	logger := slog.New(tint.NewHandler(os.Stderr, nil))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())

	api := e.Group("/api")

	api.GET("/palettes", func(c echo.Context) error {
		palettes := riso.PresetHex()
		if *palettesDir != "" {
			if err := addFilePalettes(palettes, *palettesDir); err != nil {
				logger.Warn("failed to read palette directory",
					"dir", *palettesDir, "error", err)
			}
		}
		return c.JSON(http.StatusOK, palettes)
	})

	api.POST("/booklet", func(c echo.Context) error {
		var req bookletRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		booklet, err := req.toBooklet()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		var buf bytes.Buffer
		if err := booklet.Render(&buf); err != nil {
			logger.Error("booklet render failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		logger.Info("booklet rendered",
			"paper", req.PaperSize, "pages", len(req.Pages), "bytes", buf.Len())
		return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
	})

	logger.Info("listening", "addr", *listenAddr)
	log.Fatal(e.Start(*listenAddr))
}

func (req *bookletRequest) toBooklet() (*layout.Booklet, error) {
	booklet := &layout.Booklet{
		Paper:       req.PaperSize,
		Orientation: req.Orientation,
		Pages:       make(map[int][]layout.PlacedImage),
	}

	for key, placements := range req.Pages {
		num, err := strconv.Atoi(key)
		if err != nil || num < 1 || num > 8 {
			return nil, fmt.Errorf("invalid page number %q", key)
		}

		for _, p := range placements {
			img, err := decodeDataURL(p.Src)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", num, err)
			}

			booklet.Pages[num] = append(booklet.Pages[num], layout.PlacedImage{
				Image:    img,
				X:        p.X,
				Y:        p.Y,
				Width:    p.Width,
				Height:   float64(p.Height),
				Rotation: p.Rotation,
				FlipX:    p.ScaleX < 0,
			})
		}
	}

	return booklet, nil
}

// decodeDataURL decodes a base64 data URL into an image.
func decodeDataURL(src string) (image.Image, error) {
	_, encoded, ok := strings.Cut(src, ";base64,")
	if !ok {
		return nil, fmt.Errorf("image src must be a base64 data URL")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// addFilePalettes merges palettes from .txt files in dir into the preset
// table, keyed by file basename.
func addFilePalettes(palettes map[string][]string, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}

	for _, path := range paths {
		palette, err := riso.LoadPaletteFile(path)
		if err != nil {
			continue
		}
		name := strings.TrimSuffix(filepath.Base(path), ".txt")
		palettes[name] = palette.Hex()
	}
	return nil
}
