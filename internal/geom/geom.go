// Package geom provides the 2D primitives shared across the tool:
// - Points/vectors and their arithmetic
// - 2D affine transformations (translation, rotation, scaling)
// - Transform composition
// - The three coordinate spaces (pixel, screen, world)
package geom

import "math"

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Translation returns a transform moving points by v.
func Translation(v Point) Affine { return MakeAffine(1, 0, v.X, 0, 1, v.Y) }

// Scaling returns a (possibly non-uniform) scale about the origin.
func Scaling(sx, sy float64) Affine { return MakeAffine(sx, 0, 0, 0, sy, 0) }

// Rotation returns a counter-clockwise rotation about the origin.
func Rotation(degrees float64) Affine {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return MakeAffine(cos, -sin, 0, sin, cos, 0)
}

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// MulVector applies only the linear part of the transform (no translation).
func (t Affine) MulVector(v Point) Point {
	return Point{
		X: t.A*v.X + t.B*v.Y,
		Y: t.D*v.X + t.E*v.Y,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Offset returns the translation column of the transform, i.e. where the
// origin ends up.
func (t Affine) Offset() Point { return Point{t.C, t.F} }

// Matrix4 converts the transform to a column-major OpenGL 4x4 matrix.
func (t Affine) Matrix4() [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
