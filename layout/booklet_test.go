package layout

import (
	"bytes"
	"testing"
)

func TestBookletRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	bk := &Booklet{}
	if err := bk.Render(&buf); err != nil {
		t.Fatal(err)
	}
	assertPDF(t, &buf)
}

func TestBookletRenderWithPages(t *testing.T) {
	bk := &Booklet{
		Paper:       "A3",
		Orientation: "landscape",
		Pages: map[int][]PlacedImage{
			1: {{Image: testImage(100, 60), X: 10, Y: 10, Width: 120, Height: 80}},
			4: {{Image: testImage(80, 80), X: 0, Y: 0, Width: 100, Rotation: 45}},
			5: {{Image: testImage(40, 40), X: 5, Y: 5, Width: 50, FlipX: true}},
			8: {{Image: testImage(60, 30), X: 20, Y: 40, Width: 90}}, // auto height
		},
	}

	var buf bytes.Buffer
	if err := bk.Render(&buf); err != nil {
		t.Fatal(err)
	}
	assertPDF(t, &buf)
}

func TestBookletPageAssignments(t *testing.T) {
	// Saddle-stitch imposition: front carries 8, 1, 4, 5 and back carries
	// 2, 7, 6, 3. Every booklet page lands on exactly one side.
	seen := make(map[int]int)
	for side, slots := range bookletSides {
		for num := range slots {
			if prev, ok := seen[num]; ok {
				t.Errorf("page %d on both side %d and side %d", num, prev, side)
			}
			seen[num] = side
		}
	}
	for num := 1; num <= 8; num++ {
		if _, ok := seen[num]; !ok {
			t.Errorf("page %d has no slot", num)
		}
	}

	front := bookletSides[0]
	for _, num := range []int{8, 1, 4, 5} {
		if _, ok := front[num]; !ok {
			t.Errorf("page %d missing from the front side", num)
		}
	}
}

func TestBookletPortraitOrientation(t *testing.T) {
	bk := &Booklet{
		Paper:       "A4",
		Orientation: "portrait",
		Pages: map[int][]PlacedImage{
			2: {{Image: testImage(30, 30), Width: 40}},
		},
	}

	var buf bytes.Buffer
	if err := bk.Render(&buf); err != nil {
		t.Fatal(err)
	}
	assertPDF(t, &buf)
}
