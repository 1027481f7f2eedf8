// Package viewport owns the virtual camera: where it looks in the world, how
// much of the world it shows (a discretized zoom level), and the pixel size of
// the window it is shown in. It converts between pixel, screen and world
// coordinates.
package viewport

import (
	"errors"
	"fmt"
	"math"

	"github.com/irfansharif/panotool/internal/geom"
)

// Pixel dimension errors. Returned by New and SetPixelDimensions.
var (
	ErrZeroWidth          = errors.New("viewport width in pixels is zero")
	ErrZeroHeight         = errors.New("viewport height in pixels is zero")
	ErrZeroWidthAndHeight = errors.New("viewport width and height in pixels are zero")
)

// Config holds the initial viewport state.
type Config struct {
	CameraPosition geom.WorldCoords
	ZoomScale      float64 // world units visible across the width at zoom level 0
	ZoomLevel      int
	ZoomMin        int
	ZoomMax        int
	Width, Height  int // in pixels
}

// DefaultConfig matches what the tool starts with when nothing is configured.
func DefaultConfig() Config {
	return Config{
		ZoomScale: 1,
		ZoomLevel: 10,
		ZoomMin:   1,
		ZoomMax:   15,
		Width:     1280,
		Height:    960,
	}
}

// Viewport manages the current camera, zoom level and pixel dimensions.
type Viewport struct {
	CameraPosition geom.WorldCoords // world point at the viewport center
	ZoomScale      float64

	zoomLevel        int
	zoomMin, zoomMax int
	width, height    int // always > 0
}

// Projection is what the render layer needs to build an orthographic camera.
type Projection struct {
	Center        geom.WorldCoords
	Width, Height float64 // in world units
}

// New creates a viewport from the given config. The zoom level is clamped into
// [ZoomMin, ZoomMax].
func New(cfg Config) (*Viewport, error) {
	if err := checkPixelDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if cfg.ZoomMin > cfg.ZoomMax {
		return nil, fmt.Errorf("zoom range is empty: min %d > max %d", cfg.ZoomMin, cfg.ZoomMax)
	}
	if cfg.ZoomScale <= 0 || math.IsNaN(cfg.ZoomScale) || math.IsInf(cfg.ZoomScale, 0) {
		return nil, fmt.Errorf("zoom scale must be positive and finite, got %v", cfg.ZoomScale)
	}

	vp := &Viewport{
		CameraPosition: cfg.CameraPosition,
		ZoomScale:      cfg.ZoomScale,
		zoomLevel:      cfg.ZoomLevel,
		zoomMin:        cfg.ZoomMin,
		zoomMax:        cfg.ZoomMax,
		width:          cfg.Width,
		height:         cfg.Height,
	}
	vp.zoomLevel = min(max(vp.zoomLevel, vp.zoomMin), vp.zoomMax)
	return vp, nil
}

func checkPixelDimensions(width, height int) error {
	switch {
	case width <= 0 && height <= 0:
		return ErrZeroWidthAndHeight
	case width <= 0:
		return ErrZeroWidth
	case height <= 0:
		return ErrZeroHeight
	}
	return nil
}

// SetPixelDimensions updates the viewport size. On error neither dimension is
// changed.
func (vp *Viewport) SetPixelDimensions(width, height int) error {
	if err := checkPixelDimensions(width, height); err != nil {
		return err
	}
	vp.width, vp.height = width, height
	return nil
}

// PixelDimensions returns the current viewport size in pixels.
func (vp *Viewport) PixelDimensions() (width, height int) { return vp.width, vp.height }

func (vp *Viewport) ZoomLevel() int        { return vp.zoomLevel }
func (vp *Viewport) ZoomRange() (int, int) { return vp.zoomMin, vp.zoomMax }

// ZoomIn shows less of the world. It is a no-op at the minimum zoom level.
// Returns whether the zoom level changed.
func (vp *Viewport) ZoomIn() bool {
	if vp.zoomLevel > vp.zoomMin {
		vp.zoomLevel--
		return true
	}
	return false
}

// ZoomOut shows more of the world. It is a no-op at the maximum zoom level.
// Returns whether the zoom level changed.
func (vp *Viewport) ZoomOut() bool {
	if vp.zoomLevel < vp.zoomMax {
		vp.zoomLevel++
		return true
	}
	return false
}

func (vp *Viewport) sizeInWorldUnits() float64 {
	return math.Exp2(float64(vp.zoomLevel)) * vp.ZoomScale
}

func (vp *Viewport) aspectRatio() float64 {
	return float64(vp.width) / float64(vp.height)
}

// WidthInWorldUnits is the world distance across the viewport.
func (vp *Viewport) WidthInWorldUnits() float64 { return vp.sizeInWorldUnits() }

// HeightInWorldUnits is the world distance from the bottom to the top of the
// viewport.
func (vp *Viewport) HeightInWorldUnits() float64 { return vp.sizeInWorldUnits() / vp.aspectRatio() }

func (vp *Viewport) WorldUnitsPerPixel() float64 {
	return vp.sizeInWorldUnits() / float64(vp.width)
}

// PixelToScreen converts a pointer position to normalized screen coordinates.
func (vp *Viewport) PixelToScreen(p geom.PixelCoords) geom.ScreenCoords {
	return geom.ScreenCoords{
		X: p.X/float64(vp.width) - 0.5,
		Y: 1 - p.Y/float64(vp.height) - 0.5,
	}
}

// ScreenToPixel is the inverse of PixelToScreen.
func (vp *Viewport) ScreenToPixel(s geom.ScreenCoords) geom.PixelCoords {
	return geom.PixelCoords{
		X: (s.X + 0.5) * float64(vp.width),
		Y: (0.5 - s.Y) * float64(vp.height),
	}
}

// ScreenToWorldAtOrigin scales a screen position by the visible world size.
// The result is an offset from the camera, not an absolute position.
func (vp *Viewport) ScreenToWorldAtOrigin(s geom.ScreenCoords) geom.WorldCoords {
	return geom.WorldCoords{
		X: vp.WidthInWorldUnits() * s.X,
		Y: vp.HeightInWorldUnits() * s.Y,
	}
}

// WorldToScreen converts an absolute world position to screen coordinates.
func (vp *Viewport) WorldToScreen(w geom.WorldCoords) geom.ScreenCoords {
	offset := w.Sub(vp.CameraPosition)
	return geom.ScreenCoords{
		X: offset.X / vp.WidthInWorldUnits(),
		Y: offset.Y / vp.HeightInWorldUnits(),
	}
}

// PixelsToWorld returns the world position under a pointer position.
func (vp *Viewport) PixelsToWorld(p geom.PixelCoords) geom.WorldCoords {
	return vp.ScreenToWorldAtOrigin(vp.PixelToScreen(p)).Add(vp.CameraPosition)
}

// WorldToPixels returns the pointer position over a world position.
func (vp *Viewport) WorldToPixels(w geom.WorldCoords) geom.PixelCoords {
	return vp.ScreenToPixel(vp.WorldToScreen(w))
}

// Projection returns the region of the world currently shown.
func (vp *Viewport) Projection() Projection {
	return Projection{
		Center: vp.CameraPosition,
		Width:  vp.WidthInWorldUnits(),
		Height: vp.HeightInWorldUnits(),
	}
}

// WorldToNDC maps the visible world region onto OpenGL normalized device
// coordinates ([-1, 1] on both axes, y up).
func (p Projection) WorldToNDC() geom.Affine {
	toCenter := geom.Translation(geom.MakePoint(-p.Center.X, -p.Center.Y))
	scale := geom.Scaling(2/p.Width, 2/p.Height)
	return scale.Mul(toCenter)
}
