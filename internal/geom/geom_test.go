package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestRotation(t *testing.T) {
	for _, tc := range []struct {
		deg  float64
		in   Point
		want Point
	}{
		{0, MakePoint(1, 0), MakePoint(1, 0)},
		{90, MakePoint(1, 0), MakePoint(0, 1)},
		{180, MakePoint(1, 2), MakePoint(-1, -2)},
		{-90, MakePoint(0, 1), MakePoint(1, 0)},
		{450, MakePoint(1, 0), MakePoint(0, 1)},
	} {
		if got := Rotation(tc.deg).MulPoint(tc.in); !near(got, tc.want) {
			t.Errorf("Rotation(%v)*%v = %v, want %v", tc.deg, tc.in, got, tc.want)
		}
	}
}

func TestMulAppliesRightOperandFirst(t *testing.T) {
	tr := Translation(MakePoint(10, 0))
	rot := Rotation(90)

	// Rotate then translate.
	if got := tr.Mul(rot).MulPoint(MakePoint(1, 0)); !near(got, MakePoint(10, 1)) {
		t.Errorf("got %v, want (10, 1)", got)
	}
	// Translate then rotate.
	if got := rot.Mul(tr).MulPoint(MakePoint(1, 0)); !near(got, MakePoint(0, 11)) {
		t.Errorf("got %v, want (0, 11)", got)
	}
}

func TestMulVectorIgnoresTranslation(t *testing.T) {
	m := Translation(MakePoint(100, 100)).Mul(Scaling(2, 3))
	if got := m.MulVector(MakePoint(1, 1)); !near(got, MakePoint(2, 3)) {
		t.Errorf("got %v, want (2, 3)", got)
	}
}

func TestMatrix4ColumnMajor(t *testing.T) {
	m := MakeAffine(1, 2, 3, 4, 5, 6).Matrix4()
	want := [16]float32{1, 4, 0, 0, 2, 5, 0, 0, 0, 0, 1, 0, 3, 6, 0, 1}
	if m != want {
		t.Errorf("Matrix4 = %v, want %v", m, want)
	}
}

func TestWorldCoordsArithmetic(t *testing.T) {
	a := WorldCoords{X: 1, Y: 2}
	b := WorldCoords{X: 10, Y: -5}
	if got := a.Add(b); got != (WorldCoords{X: 11, Y: -3}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (WorldCoords{X: 9, Y: -7}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Point().World(); got != a {
		t.Errorf("Point/World round trip = %v", got)
	}
}
