package riso

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered set of ink colors. The order only matters for
// tie-breaking during matching: when two entries are equally close, the one
// with the smaller index wins.
type Palette []color.RGBA

// Nearest returns the palette entry closest to the color (r, g, b) by sum of
// squared per-channel differences, along with its index. The input channels
// are unconstrained; values outside [0, 255] are handled like any other.
func (p Palette) Nearest(r, g, b float64) (color.RGBA, int) {
	best := 0
	bestDist := nearestDist(p[0], r, g, b)
	for i := 1; i < len(p); i++ {
		if d := nearestDist(p[i], r, g, b); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return p[best], best
}

func nearestDist(c color.RGBA, r, g, b float64) float64 {
	dr := r - float64(c.R)
	dg := g - float64(c.G)
	db := b - float64(c.B)
	return dr*dr + dg*dg + db*db
}

// Contains reports whether c is one of the palette entries.
func (p Palette) Contains(c color.RGBA) bool {
	for _, e := range p {
		if e.R == c.R && e.G == c.G && e.B == c.B {
			return true
		}
	}
	return false
}

// Hex returns the palette as lowercase "#rrggbb" strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = HexColor(c)
	}
	return out
}

// HexColor formats a color as lowercase "#rrggbb".
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// presetHex holds the built-in Risograph ink combinations. The table is
// never mutated after initialization.
var presetHex = map[string][]string{
	"riso-pink-blue": {"#FF0080", "#0078BF"},
	"riso-fluoro":    {"#FF48B0", "#FFE800", "#00A95C"},
	"riso-primary":   {"#FF0000", "#0000FF", "#FFFF00"},
	"riso-warm":      {"#FF6600", "#FFE800", "#FF0080"},
	"riso-cool":      {"#0078BF", "#00A95C", "#5C55A6"},
}

// Preset returns the named built-in palette, or false if the name is not a
// known preset.
func Preset(name string) (Palette, bool) {
	hexes, ok := presetHex[name]
	if !ok {
		return nil, false
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("riso: bad preset color " + h)
		}
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p, true
}

// PresetNames returns the names of the built-in palettes.
func PresetNames() []string {
	names := make([]string, 0, len(presetHex))
	for name := range presetHex {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetHex returns the built-in palette table as hex color lists, keyed by
// preset name. The result is a copy and may be modified by the caller.
func PresetHex() map[string][]string {
	out := make(map[string][]string, len(presetHex))
	for name, hexes := range presetHex {
		out[name] = append([]string(nil), hexes...)
	}
	return out
}

// ParsePalette parses an inline comma-separated list of hex colors such as
// "#ff0080,#0078bf". Entries that do not start with '#' are silently
// skipped; entries that start with '#' but are not valid colors are errors.
func ParsePalette(list string) (Palette, error) {
	var p Palette
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if !strings.HasPrefix(entry, "#") {
			continue
		}
		c, err := colorful.Hex(entry)
		if err != nil {
			return nil, fmt.Errorf("riso: invalid palette color %q: %v", entry, err)
		}
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return p, nil
}

// LoadPaletteFile reads a line-oriented palette file. A line is a color
// exactly when it starts with '#' followed by six hex digits; every other
// line (palette names, comments, blanks) is ignored.
func LoadPaletteFile(path string) (Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Palette
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !isHexColorLine(line) {
			continue
		}
		c, err := colorful.Hex(line[:7])
		if err != nil {
			return nil, fmt.Errorf("riso: invalid palette color %q: %v", line[:7], err)
		}
		r, g, b := c.RGB255()
		p = append(p, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func isHexColorLine(line string) bool {
	if len(line) < 7 || line[0] != '#' {
		return false
	}
	for _, c := range line[1:7] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ResolvePalette interprets a palette argument the way the command line
// tools do: first as a preset name, then as a path to a palette file, and
// finally as an inline hex color list.
func ResolvePalette(arg string) (Palette, error) {
	if p, ok := Preset(arg); ok {
		return p, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return LoadPaletteFile(arg)
	}
	return ParsePalette(arg)
}
