package render

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/irfansharif/panotool/internal/geom"
)

const tolerance = 1e-9

func near(a, b geom.WorldCoords) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

func TestUnitQuad(t *testing.T) {
	m := unitQuad()
	if m.vertexCount() != 6 {
		t.Fatalf("unit quad has %d vertices", m.vertexCount())
	}
	// The top left corner samples the image's first row.
	for i := 0; i < len(m); i += floatsPerVertex {
		x, y, u, v := m[i], m[i+1], m[i+2], m[i+3]
		if u != x+0.5 || v != 0.5-y {
			t.Errorf("vertex (%v, %v) has uv (%v, %v)", x, y, u, v)
		}
	}
}

func TestSegment(t *testing.T) {
	q, ok := segment(geom.WorldCoords{}, geom.WorldCoords{X: 10}, 2)
	if !ok {
		t.Fatal("segment rejected")
	}
	want := [4]geom.WorldCoords{{X: 0, Y: -1}, {X: 10, Y: -1}, {X: 10, Y: 1}, {X: 0, Y: 1}}
	for i := range want {
		if !near(q[i], want[i]) {
			t.Errorf("corner %d = %v, want %v", i, q[i], want[i])
		}
	}

	if _, ok := segment(geom.WorldCoords{X: 3}, geom.WorldCoords{X: 3}, 2); ok {
		t.Errorf("zero-length segment accepted")
	}
}

func TestSquare(t *testing.T) {
	c := geom.WorldCoords{X: 5, Y: 5}
	q := square(c, 2, 0)
	want := [4]geom.WorldCoords{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 6, Y: 6}, {X: 4, Y: 6}}
	for i := range want {
		if !near(q[i], want[i]) {
			t.Errorf("corner %d = %v, want %v", i, q[i], want[i])
		}
	}

	// A diamond has its first corner straight below the center.
	d := square(c, 2, 45)
	if !near(d[0], geom.WorldCoords{X: 5, Y: 5 - math.Sqrt2}) {
		t.Errorf("diamond corner = %v", d[0])
	}
}

func TestPolygon(t *testing.T) {
	var m mesh
	sq := square(geom.WorldCoords{}, 4, 0)
	if err := m.polygon(sq[:]); err != nil {
		t.Fatal(err)
	}
	if m.vertexCount() != 6 {
		t.Errorf("square triangulated into %d vertices", m.vertexCount())
	}

	if err := m.polygon([]geom.WorldCoords{{}, {X: 1}}); err == nil {
		t.Errorf("two-point polygon triangulated")
	}
}

func TestWedge(t *testing.T) {
	pivot := geom.WorldCoords{X: 1, Y: 1}
	for _, tc := range []struct {
		name string
		to   geom.WorldCoords
		sign float64
	}{
		{"counter-clockwise", geom.WorldCoords{X: 1, Y: 11}, 1},
		{"clockwise", geom.WorldCoords{X: 1, Y: -9}, -1},
	} {
		from := geom.WorldCoords{X: 11, Y: 1}
		points := wedge(pivot, from, tc.to)
		if len(points) < 4 {
			t.Errorf("%s: wedge has %d points", tc.name, len(points))
			continue
		}
		if points[0] != pivot || !near(points[1], from) || points[len(points)-1] != tc.to {
			t.Errorf("%s: wedge endpoints = %v", tc.name, points)
		}
		for _, p := range points[1:] {
			if r := math.Hypot(p.X-pivot.X, p.Y-pivot.Y); math.Abs(r-10) > tolerance {
				t.Errorf("%s: arc point %v at radius %v", tc.name, p, r)
			}
			if (p.Y-pivot.Y)*tc.sign < -tolerance {
				t.Errorf("%s: arc point %v on the wrong side", tc.name, p)
			}
		}

		var m mesh
		if err := m.polygon(points); err != nil {
			t.Errorf("%s: %v", tc.name, err)
		}
	}
}

func TestFitWithin(t *testing.T) {
	for _, tc := range []struct {
		w, h, limit  int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{10000, 1, 100, 100, 1},
	} {
		if w, h := fitWithin(tc.w, tc.h, tc.limit); w != tc.wantW || h != tc.wantH {
			t.Errorf("fitWithin(%d, %d, %d) = %dx%d, want %dx%d",
				tc.w, tc.h, tc.limit, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, red)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	full, err := LoadImage(path, 4096)
	if err != nil {
		t.Fatal(err)
	}
	if full.Rect.Dx() != 400 || full.Rect.Dy() != 100 || full.RGBAAt(0, 0) != red {
		t.Errorf("full size image = %v, first pixel %v", full.Rect, full.RGBAAt(0, 0))
	}

	small, err := LoadImage(path, 200)
	if err != nil {
		t.Fatal(err)
	}
	if small.Rect.Dx() != 200 || small.Rect.Dy() != 50 || small.RGBAAt(100, 25) != red {
		t.Errorf("downscaled image = %v, center pixel %v", small.Rect, small.RGBAAt(100, 25))
	}

	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png"), 100); err == nil {
		t.Errorf("loading a missing image succeeded")
	}
}
