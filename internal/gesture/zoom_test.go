package gesture

import (
	"math"
	"testing"

	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/viewport"
)

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	cursors := []geom.PixelCoords{{X: 300, Y: 100}, {X: 0, Y: 0}, {X: 1023, Y: 511}, {X: 512, Y: 256}}
	for level := 2; level <= 14; level++ {
		for _, cursor := range cursors {
			for _, in := range []bool{true, false} {
				vp, err := viewport.New(viewport.Config{
					CameraPosition: geom.WorldCoords{X: 123, Y: -45},
					ZoomScale:      1.5,
					ZoomLevel:      level,
					ZoomMin:        1,
					ZoomMax:        15,
					Width:          1024,
					Height:         512,
				})
				if err != nil {
					t.Fatal(err)
				}

				before := vp.PixelsToWorld(cursor)
				step := vp.ZoomOut
				if in {
					step = vp.ZoomIn
				}
				if !ZoomAt(vp, cursor, step) {
					t.Fatalf("level %d: zoom step reported no change", level)
				}
				after := vp.PixelsToWorld(cursor)

				tol := 1e-9 * math.Max(1, math.Abs(before.X)+math.Abs(before.Y))
				if math.Abs(before.X-after.X) > tol || math.Abs(before.Y-after.Y) > tol {
					t.Errorf("level %d zoom in=%t at %v: %v -> %v", level, in, cursor, before, after)
				}
			}
		}
	}
}

func TestZoomAtBoundLeavesCamera(t *testing.T) {
	vp, err := viewport.New(viewport.Config{
		CameraPosition: geom.WorldCoords{X: 0.1, Y: 0.7},
		ZoomScale:      1,
		ZoomLevel:      1,
		ZoomMin:        1,
		ZoomMax:        15,
		Width:          640,
		Height:         480,
	})
	if err != nil {
		t.Fatal(err)
	}
	if ZoomAt(vp, geom.PixelCoords{X: 10, Y: 470}, vp.ZoomIn) {
		t.Errorf("zoom past the floor reported a change")
	}
	if vp.CameraPosition != (geom.WorldCoords{X: 0.1, Y: 0.7}) {
		t.Errorf("camera drifted to %v", vp.CameraPosition)
	}
}

func TestScrollDirection(t *testing.T) {
	for _, tc := range []struct {
		wheel input.WheelConvention
		delta float64
		want  int
	}{
		{input.Natural, 1, 9},
		{input.Natural, -2, 11},
		{input.Inverted, 1, 11},
		{input.Inverted, -1, 9},
		{input.Natural, 0, 10},
	} {
		p := NewProcessor(newViewport(t), nil, tc.wheel)
		p.Process([]input.Event{input.Scroll{Delta: tc.delta, Position: pixelAt(0, 0)}})
		if got := p.Viewport.ZoomLevel(); got != tc.want {
			t.Errorf("%v wheel, delta %v: zoom level %d, want %d", tc.wheel, tc.delta, got, tc.want)
		}
	}
}

func TestZoomDuringPanRebases(t *testing.T) {
	p := NewProcessor(newViewport(t), nil, input.Natural)
	p.Process([]input.Event{
		press(input.Auxiliary, pixelAt(0, 0)),
		move(pixelAt(10, 0)),
		input.Scroll{Delta: -1, Position: pixelAt(10, 0)}, // one pixel is now two world units
	})
	camera := p.Viewport.CameraPosition
	p.Process([]input.Event{move(pixelAt(20, 0))})
	if got, want := p.Viewport.CameraPosition, camera.Sub(geom.WorldCoords{X: 20}); !near(got, want) {
		t.Errorf("camera = %v, want %v", got, want)
	}
}
