package riso

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

func TestNearest(t *testing.T) {
	p := Palette{black, white, red}

	tests := []struct {
		name    string
		r, g, b float64
		want    int
	}{
		{"exact black", 0, 0, 0, 0},
		{"exact white", 255, 255, 255, 1},
		{"near black", 30, 20, 10, 0},
		{"near red", 200, 40, 40, 2},
		{"negative channels", -500, -500, -500, 0},
		{"above range", 900, 900, 900, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, i := p.Nearest(tt.r, tt.g, tt.b)
			if i != tt.want {
				t.Errorf("Nearest(%v, %v, %v) index = %d, want %d",
					tt.r, tt.g, tt.b, i, tt.want)
			}
			if c != p[tt.want] {
				t.Errorf("Nearest(%v, %v, %v) = %v, want %v",
					tt.r, tt.g, tt.b, c, p[tt.want])
			}
		})
	}
}

func TestNearestTieFirstWins(t *testing.T) {
	// 128 is equidistant from 0 and 256 is out of reach, so use symmetric
	// grays: 100 and 156 are both 28 away from 128.
	p := Palette{
		{100, 100, 100, 255},
		{156, 156, 156, 255},
	}
	_, i := p.Nearest(128, 128, 128)
	if i != 0 {
		t.Errorf("tie broke to index %d, want first entry (0)", i)
	}

	// Same distances, reversed order: still the first entry.
	rev := Palette{p[1], p[0]}
	_, i = rev.Nearest(128, 128, 128)
	if i != 0 {
		t.Errorf("reversed tie broke to index %d, want first entry (0)", i)
	}
}

func TestHexColor(t *testing.T) {
	if got := HexColor(color.RGBA{255, 0, 128, 255}); got != "#ff0080" {
		t.Errorf("HexColor = %q, want %q", got, "#ff0080")
	}
}

func TestPreset(t *testing.T) {
	p, ok := Preset("riso-pink-blue")
	if !ok {
		t.Fatal("riso-pink-blue should be a known preset")
	}
	want := Palette{
		{0xFF, 0x00, 0x80, 255},
		{0x00, 0x78, 0xBF, 255},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("preset mismatch (-want +got):\n%s", diff)
	}

	if _, ok := Preset("no-such-preset"); ok {
		t.Error("unknown preset name should not resolve")
	}
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	if len(names) == 0 {
		t.Fatal("no preset names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Palette
		wantErr bool
	}{
		{
			name: "basic",
			in:   "#ff0000,#0000ff",
			want: Palette{red, blue},
		},
		{
			name: "skips non-hex entries",
			in:   "red,#ff0000,blue,#0000ff",
			want: Palette{red, blue},
		},
		{
			name: "whitespace tolerant",
			in:   " #ff0000 , #0000ff ",
			want: Palette{red, blue},
		},
		{
			name:    "malformed hex entry",
			in:      "#ff00,#0000ff",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePalette(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePalette(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePalette(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestLoadPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.txt")
	content := `My Riso Palette
# a comment that is not a color
#FF0000
#0000ff extra trailing text is fine

not a color
#GGGGGG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPaletteFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Palette{red, blue}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("palette mismatch (-want +got):\n%s", diff)
	}
}

func TestIsHexColorLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"#ff0080", true},
		{"#FF0080", true},
		{"#ff0080 with trailing text", true},
		{"#ff008", false},
		{"ff0080", false},
		{"#gg0080", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isHexColorLine(tt.line); got != tt.want {
			t.Errorf("isHexColorLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestResolvePalette(t *testing.T) {
	t.Run("preset", func(t *testing.T) {
		p, err := ResolvePalette("riso-primary")
		if err != nil {
			t.Fatal(err)
		}
		if len(p) != 3 {
			t.Errorf("got %d colors, want 3", len(p))
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inks.txt")
		if err := os.WriteFile(path, []byte("#ff0000\n#0000ff\n"), 0644); err != nil {
			t.Fatal(err)
		}
		p, err := ResolvePalette(path)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(Palette{red, blue}, p); diff != "" {
			t.Errorf("palette mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("inline", func(t *testing.T) {
		p, err := ResolvePalette("#ff0000,#0000ff")
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(Palette{red, blue}, p); diff != "" {
			t.Errorf("palette mismatch (-want +got):\n%s", diff)
		}
	})
}
