// Package rect models where a rectangular photo sits in the world: a fixed
// scale (its size in world units), a rotation about its own center, and a
// translation of that center.
//
// In local coordinates the rectangle is centered on the origin with corners at
// (±0.5, ±0.5). A local point p lands in the world at translate*rotate*scale*p.
package rect

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/irfansharif/panotool/internal/geom"
)

// Corner names one of the rectangle's corners in its own (unrotated) frame.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// local returns the corner's position in local coordinates.
func (c Corner) local() geom.Point {
	switch c {
	case TopLeft:
		return geom.MakePoint(-0.5, 0.5)
	case TopRight:
		return geom.MakePoint(0.5, 0.5)
	case BottomLeft:
		return geom.MakePoint(-0.5, -0.5)
	default:
		return geom.MakePoint(0.5, -0.5)
	}
}

type edge int

const (
	left edge = iota
	right
	top
	bottom
)

// Transform is the placement of one photo.
type Transform struct {
	width, height float64 // scale, in world units; fixed
	translate     geom.WorldCoords
	rotate        float64 // degrees, counter-clockwise about the center
}

// New returns a transform for a width x height rectangle centered on the
// origin, unrotated.
func New(width, height float64) *Transform {
	return &Transform{width: width, height: height}
}

// Size returns the rectangle's extent in world units.
func (t *Transform) Size() (width, height float64) { return t.width, t.height }

func (t *Transform) SetTranslation(center geom.WorldCoords) { t.translate = center }

// Translation returns the world position of the rectangle's center.
func (t *Transform) Translation() geom.WorldCoords { return t.translate }

func (t *Transform) SetRotation(degrees float64) { t.rotate = degrees }

// Rotation returns the rotation about the rectangle's center, in degrees.
func (t *Transform) Rotation() float64 { return t.rotate }

// ToWorld returns the full local to world transform.
func (t *Transform) ToWorld() geom.Affine {
	return geom.Translation(t.translate.Point()).
		Mul(geom.Rotation(t.rotate)).
		Mul(geom.Scaling(t.width, t.height))
}

// RotateAroundPoint rotates the rectangle by degrees about pivot, relative to
// its current placement. Callers wanting an absolute result must restore a
// remembered placement first.
func (t *Transform) RotateAroundPoint(degrees float64, pivot geom.WorldCoords) {
	center := r2.Vec(t.translate)

	// Move the rotation origin to the pivot, then back out along the rotated
	// offset.
	toPivot := r2.Sub(r2.Vec(pivot), center)
	rotated := r2.Rotate(toPivot, degrees*math.Pi/180, r2.Vec{})
	t.translate = geom.WorldCoords(r2.Sub(r2.Add(center, toPivot), rotated))

	t.rotate += degrees
}

// Corner returns the world position of the given corner.
func (t *Transform) Corner(c Corner) geom.WorldCoords {
	return t.ToWorld().MulPoint(c.local()).World()
}

// Outline returns the corners in drawing order, counter-clockwise in the
// rectangle's own frame starting at the bottom left.
func (t *Transform) Outline() [4]geom.WorldCoords {
	m := t.ToWorld()
	return [4]geom.WorldCoords{
		m.MulPoint(BottomLeft.local()).World(),
		m.MulPoint(BottomRight.local()).World(),
		m.MulPoint(TopRight.local()).World(),
		m.MulPoint(TopLeft.local()).World(),
	}
}

// inside reports whether p is on the inner side of (or on) the given edge. The
// inward normal is taken from the corner opposite along the adjacent edge, so
// the test holds at any rotation.
func (t *Transform) inside(p geom.WorldCoords, e edge) bool {
	var onEdge, inward Corner
	switch e {
	case bottom:
		onEdge, inward = BottomLeft, TopLeft
	case left:
		onEdge, inward = BottomLeft, BottomRight
	case top:
		onEdge, inward = TopRight, BottomRight
	case right:
		onEdge, inward = TopRight, TopLeft
	}

	anchor := r2.Vec(t.Corner(onEdge))
	normal := r2.Sub(r2.Vec(t.Corner(inward)), anchor)
	return r2.Dot(normal, r2.Sub(r2.Vec(p), anchor)) >= 0
}

// Contains reports whether p lies within the rectangle's edges. Points on the
// boundary are contained.
func (t *Transform) Contains(p geom.WorldCoords) bool {
	return t.inside(p, left) &&
		t.inside(p, right) &&
		t.inside(p, top) &&
		t.inside(p, bottom)
}

// LocalToWorld maps a pixel inside the photo (origin top-left, y down, in the
// photo's own pixel units) to its world position.
func (t *Transform) LocalToWorld(px geom.PixelCoords) geom.WorldCoords {
	m := geom.Translation(t.translate.Point()).
		Mul(geom.Rotation(t.rotate)).
		Mul(geom.Scaling(1, -1)). // pixel rows grow downwards
		Mul(geom.Translation(geom.MakePoint(px.X, px.Y))).
		Mul(geom.Scaling(t.width, t.height)).
		Mul(geom.Translation(geom.MakePoint(-0.5, -0.5)))
	return m.Offset().World()
}

func (t *Transform) String() string {
	return fmt.Sprintf("%gx%g at %v rotated %.3f°", t.width, t.height, t.translate, t.rotate)
}
