package geom

import "fmt"

// PixelCoords is a raw pointer position.
type PixelCoords struct {
	X float64 // pixels in [0, width], positive is right
	Y float64 // pixels in [0, height], positive is down
}

// ScreenCoords is a position normalized to the viewport.
type ScreenCoords struct {
	X float64 // [-0.5, 0.5], positive is right
	Y float64 // [-0.5, 0.5], positive is up
}

// WorldCoords is a position (or offset) in the plane shared by all photos.
type WorldCoords struct {
	X float64 // world units, [left, right]
	Y float64 // world units, [bottom, top]
}

func (w WorldCoords) Add(o WorldCoords) WorldCoords { return WorldCoords{w.X + o.X, w.Y + o.Y} }
func (w WorldCoords) Sub(o WorldCoords) WorldCoords { return WorldCoords{w.X - o.X, w.Y - o.Y} }

// Point returns w as a plain vector, for use with Affine.
func (w WorldCoords) Point() Point { return Point(w) }

// World converts a plain vector back into world coordinates.
func (p Point) World() WorldCoords { return WorldCoords(p) }

func (w WorldCoords) String() string  { return fmt.Sprintf("(%.2f, %.2f)", w.X, w.Y) }
func (p PixelCoords) String() string  { return fmt.Sprintf("(%.1fpx, %.1fpx)", p.X, p.Y) }
func (s ScreenCoords) String() string { return fmt.Sprintf("(%.4f, %.4f)", s.X, s.Y) }
