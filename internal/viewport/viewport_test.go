package viewport

import (
	"errors"
	"math"
	"testing"

	"github.com/irfansharif/panotool/internal/geom"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) }

func mustNew(t *testing.T, cfg Config) *Viewport {
	t.Helper()
	vp, err := New(cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return vp
}

func config(scale float64, level, lo, hi, w, h int) Config {
	return Config{ZoomScale: scale, ZoomLevel: level, ZoomMin: lo, ZoomMax: hi, Width: w, Height: h}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		w, h int
		want error
	}{
		{0, 100, ErrZeroWidth},
		{100, 0, ErrZeroHeight},
		{0, 0, ErrZeroWidthAndHeight},
		{-5, 100, ErrZeroWidth},
	} {
		_, err := New(config(1, 10, 1, 15, tc.w, tc.h))
		if !errors.Is(err, tc.want) {
			t.Errorf("New(%dx%d) error = %v, want %v", tc.w, tc.h, err, tc.want)
		}
	}

	cfg := config(1, 10, 1, 15, 100, 200)
	cfg.CameraPosition = geom.WorldCoords{X: 123.4, Y: 567.8}
	vp := mustNew(t, cfg)
	if vp.CameraPosition != cfg.CameraPosition {
		t.Errorf("camera = %v", vp.CameraPosition)
	}
	if vp.ZoomLevel() != 10 {
		t.Errorf("zoom level = %d", vp.ZoomLevel())
	}
	if w, h := vp.PixelDimensions(); w != 100 || h != 200 {
		t.Errorf("dimensions = %dx%d", w, h)
	}

	if _, err := New(config(1, 5, 10, 1, 100, 100)); err == nil {
		t.Errorf("expected error for empty zoom range")
	}
	if _, err := New(config(0, 5, 1, 10, 100, 100)); err == nil {
		t.Errorf("expected error for zero zoom scale")
	}
	if vp := mustNew(t, config(1, 99, 1, 15, 10, 10)); vp.ZoomLevel() != 15 {
		t.Errorf("initial zoom not clamped: %d", vp.ZoomLevel())
	}
}

func TestSetPixelDimensions(t *testing.T) {
	vp := mustNew(t, config(1, 10, 1, 15, 640, 480))
	for _, tc := range []struct {
		w, h int
		want error
	}{
		{0, 300, ErrZeroWidth},
		{300, 0, ErrZeroHeight},
		{0, 0, ErrZeroWidthAndHeight},
	} {
		if err := vp.SetPixelDimensions(tc.w, tc.h); !errors.Is(err, tc.want) {
			t.Errorf("SetPixelDimensions(%d, %d) = %v, want %v", tc.w, tc.h, err, tc.want)
		}
		if w, h := vp.PixelDimensions(); w != 640 || h != 480 {
			t.Errorf("dimensions changed after failed update: %dx%d", w, h)
		}
	}

	if err := vp.SetPixelDimensions(800, 600); err != nil {
		t.Fatalf("SetPixelDimensions: %v", err)
	}
	if w, h := vp.PixelDimensions(); w != 800 || h != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", w, h)
	}
}

func TestZoomClamping(t *testing.T) {
	vp := mustNew(t, config(1, 3, 0, 5, 100, 100))
	for i := 0; i < 10; i++ {
		vp.ZoomIn()
	}
	if vp.ZoomLevel() != 0 {
		t.Errorf("zoom level after repeated ZoomIn = %d, want 0", vp.ZoomLevel())
	}
	if vp.ZoomIn() {
		t.Errorf("ZoomIn at the floor reported a change")
	}

	for i := 0; i < 10; i++ {
		vp.ZoomOut()
	}
	if vp.ZoomLevel() != 5 {
		t.Errorf("zoom level after repeated ZoomOut = %d, want 5", vp.ZoomLevel())
	}
	if vp.ZoomOut() {
		t.Errorf("ZoomOut at the ceiling reported a change")
	}

	if !vp.ZoomIn() || vp.ZoomLevel() != 4 {
		t.Errorf("ZoomIn from the ceiling: level = %d", vp.ZoomLevel())
	}
}

func TestWorldUnits(t *testing.T) {
	vp := mustNew(t, config(2, 10, 0, 10, 400, 200))
	if got := vp.WidthInWorldUnits(); !approx(got, 2048) {
		t.Errorf("WidthInWorldUnits = %v, want 2048", got)
	}
	if got := vp.HeightInWorldUnits(); !approx(got, 1024) {
		t.Errorf("HeightInWorldUnits = %v, want 1024", got)
	}

	vp = mustNew(t, config(2, 10, 0, 10, 1024, 512))
	if got := vp.WorldUnitsPerPixel(); !approx(got, 2) {
		t.Errorf("WorldUnitsPerPixel = %v, want 2", got)
	}
}

func TestPixelToScreen(t *testing.T) {
	vp := mustNew(t, config(2, 10, 0, 10, 1024, 512))
	for _, tc := range []struct {
		in   geom.PixelCoords
		want geom.ScreenCoords
	}{
		{geom.PixelCoords{X: 0, Y: 0}, geom.ScreenCoords{X: -0.5, Y: 0.5}},
		{geom.PixelCoords{X: 1024, Y: 512}, geom.ScreenCoords{X: 0.5, Y: -0.5}},
		{geom.PixelCoords{X: 512, Y: 256}, geom.ScreenCoords{X: 0, Y: 0}},
	} {
		got := vp.PixelToScreen(tc.in)
		if !approx(got.X, tc.want.X) || !approx(got.Y, tc.want.Y) {
			t.Errorf("PixelToScreen(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestScreenToWorldAtOrigin(t *testing.T) {
	cfg := config(2, 10, 0, 10, 400, 200)
	cfg.CameraPosition = geom.WorldCoords{X: 1e6, Y: 1e6} // ignored
	vp := mustNew(t, cfg)

	got := vp.ScreenToWorldAtOrigin(geom.ScreenCoords{})
	if !approx(got.X, 0) || !approx(got.Y, 0) {
		t.Errorf("center = %v, want origin", got)
	}
	got = vp.ScreenToWorldAtOrigin(geom.ScreenCoords{X: -0.5, Y: 0.5})
	if !approx(got.X, -1024) || !approx(got.Y, 512) {
		t.Errorf("top left = %v, want (-1024, 512)", got)
	}
}

func TestPixelsToWorldRoundTrip(t *testing.T) {
	cameras := []geom.WorldCoords{{}, {X: 1500, Y: -320.5}, {X: -7, Y: 1e5}}
	pixels := []geom.PixelCoords{{X: 0, Y: 0}, {X: 17.25, Y: 990}, {X: 1279, Y: 1}, {X: 640, Y: 480}}
	for _, level := range []int{0, 3, 10, 15} {
		for _, camera := range cameras {
			cfg := config(1.5, level, 0, 15, 1280, 960)
			cfg.CameraPosition = camera
			vp := mustNew(t, cfg)
			for _, p := range pixels {
				back := vp.WorldToPixels(vp.PixelsToWorld(p))
				if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
					t.Errorf("zoom %d camera %v: %v -> %v", level, camera, p, back)
				}
			}
		}
	}
}

func TestPixelsToWorldAddsCamera(t *testing.T) {
	cfg := config(1, 10, 0, 10, 1024, 512)
	cfg.CameraPosition = geom.WorldCoords{X: 100, Y: 200}
	vp := mustNew(t, cfg)

	if got := vp.PixelsToWorld(geom.PixelCoords{X: 512, Y: 256}); got != cfg.CameraPosition {
		t.Errorf("center pixel = %v, want camera %v", got, cfg.CameraPosition)
	}
	got := vp.PixelsToWorld(geom.PixelCoords{X: 1024, Y: 0})
	if !approx(got.X, 100+512) || !approx(got.Y, 200+256) {
		t.Errorf("top right pixel = %v", got)
	}
}

func TestProjectionWorldToNDC(t *testing.T) {
	cfg := config(1, 10, 0, 10, 1024, 512)
	cfg.CameraPosition = geom.WorldCoords{X: 10, Y: -20}
	vp := mustNew(t, cfg)
	m := vp.Projection().WorldToNDC()

	for _, tc := range []struct {
		px   geom.PixelCoords
		want geom.Point
	}{
		{geom.PixelCoords{X: 0, Y: 0}, geom.MakePoint(-1, 1)},
		{geom.PixelCoords{X: 1024, Y: 512}, geom.MakePoint(1, -1)},
		{geom.PixelCoords{X: 512, Y: 256}, geom.MakePoint(0, 0)},
	} {
		got := m.MulPoint(vp.PixelsToWorld(tc.px).Point())
		if !approx(got.X, tc.want.X) || !approx(got.Y, tc.want.Y) {
			t.Errorf("NDC of %v = %v, want %v", tc.px, got, tc.want)
		}
	}
}
