// Package palette provides the colours the renderer draws overlays with:
// control-point markers, photo borders, the rotation point and the rotation
// wedge.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB colour with straight (non-premultiplied) alpha.
type Color struct {
	colorful.Color
	A float64
}

func rgba(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// Vec4 returns the colour as a GL vec4.
func (c Color) Vec4() [4]float32 {
	c.Color = c.Clamped()
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp(a, 0, 1)
	return c
}

// Brighter raises the colour's HSV value by delta.
func (c Color) Brighter(delta float64) Color {
	h, s, v := c.Hsv()
	c.Color = colorful.Hsv(h, s, clamp(v+delta, 0, 1))
	return c
}

var (
	Clear          = rgba(0.2, 0.2, 0.2, 1)
	Border         = rgba(0.6, 0.6, 0.6, 0.5)
	SelectedBorder = rgba(0.2, 0.8, 0.2, 1)
	RotationPoint  = rgba(0.8, 0.8, 0.2, 0.5)
	Wedge          = rgba(0.2, 0.2, 0.8, 0.5)
	AngleLine      = rgba(0.8, 0.8, 0.2, 1)
)

// Marker colours of the first two photos. Later photos get generated hues.
var fixedMarkers = [...]Color{
	rgba(0.8, 0.5, 0.2, 0.5),
	rgba(0.2, 0.8, 0.2, 0.5),
}

// goldenAngle is the hue step, in degrees, between generated marker colours.
const goldenAngle = 137.50776405003785

// Marker returns the control-point marker colour for photo i.
func Marker(i int) Color {
	if i >= 0 && i < len(fixedMarkers) {
		return fixedMarkers[i]
	}
	hue := math.Mod(30+float64(i)*goldenAngle, 360)
	return Color{Color: colorful.Hsv(hue, 0.75, 0.8), A: 0.5}
}

// MarkerAngle returns how far photo i's square markers are turned, in degrees.
// Alternating photos are drawn as squares and diamonds.
func MarkerAngle(i int) float64 {
	if i%2 == 1 {
		return 45
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
