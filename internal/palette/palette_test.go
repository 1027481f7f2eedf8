package palette

import (
	"math"
	"testing"
)

func TestMarkerFixedColours(t *testing.T) {
	for i, want := range [][4]float32{
		{0.8, 0.5, 0.2, 0.5},
		{0.2, 0.8, 0.2, 0.5},
	} {
		if got := Marker(i).Vec4(); got != want {
			t.Errorf("Marker(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestMarkerGeneratedHuesDiffer(t *testing.T) {
	seen := map[int]int{}
	for i := 2; i < 10; i++ {
		c := Marker(i)
		if c.A != 0.5 {
			t.Errorf("Marker(%d) alpha = %v", i, c.A)
		}
		h, _, _ := c.Hsv()
		bucket := int(math.Round(h / 10))
		if j, ok := seen[bucket]; ok {
			t.Errorf("Marker(%d) and Marker(%d) share hue %v", i, j, h)
		}
		seen[bucket] = i
	}
}

func TestMarkerAngle(t *testing.T) {
	if MarkerAngle(0) != 0 || MarkerAngle(1) != 45 || MarkerAngle(2) != 0 {
		t.Errorf("marker angles = %v, %v, %v", MarkerAngle(0), MarkerAngle(1), MarkerAngle(2))
	}
}

func TestAdjustments(t *testing.T) {
	if got := Wedge.WithAlpha(2).A; got != 1 {
		t.Errorf("WithAlpha(2) = %v, want clamped to 1", got)
	}
	_, _, v0 := Border.Hsv()
	_, _, v1 := Border.Brighter(0.2).Hsv()
	if math.Abs(v1-v0-0.2) > 1e-9 {
		t.Errorf("Brighter(0.2) moved value from %v to %v", v0, v1)
	}
	if got := SelectedBorder.Brighter(5).Vec4(); got[1] != 1 {
		t.Errorf("Brighter past white = %v", got)
	}
}
