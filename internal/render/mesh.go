package render

import (
	"fmt"
	"math"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/panotool/internal/geom"
)

// mesh is a flat list of triangle vertices, three per triangle, each with a
// position and a texture coordinate: [x, y, u, v, x, y, u, v, ...].
type mesh []float32

const floatsPerVertex = 4

func (m mesh) vertexCount() int32 { return int32(len(m) / floatsPerVertex) }

func (m *mesh) vertex(p geom.WorldCoords, u, v float64) {
	*m = append(*m, float32(p.X), float32(p.Y), float32(u), float32(v))
}

// triangle appends an untextured triangle.
func (m *mesh) triangle(a, b, c geom.WorldCoords) {
	m.vertex(a, 0, 0)
	m.vertex(b, 0, 0)
	m.vertex(c, 0, 0)
}

// quad appends an untextured convex quadrilateral given in winding order.
func (m *mesh) quad(q [4]geom.WorldCoords) {
	m.triangle(q[0], q[1], q[2])
	m.triangle(q[0], q[2], q[3])
}

// polygon triangulates a simple polygon with earcut and appends the result.
func (m *mesh) polygon(points []geom.WorldCoords) error {
	if len(points) < 3 {
		return fmt.Errorf("degenerate polygon (%d vertices < 3)", len(points))
	}

	// Flat coordinate array required by earcut: [x0, y0, x1, y1, ...].
	coords := make([]float64, len(points)*2)
	for i, p := range points {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil /* holeIndices */, 2 /* dim */)
	if err != nil {
		return fmt.Errorf("triangulating %d-vertex polygon: %w", len(points), err)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("invalid triangle count (indices: %d, not divisible by 3)", len(indices))
	}
	for _, i := range indices {
		m.vertex(points[i], 0, 0)
	}
	return nil
}

// unitQuad is the photo rectangle in its local frame, textured so that the
// image's first row lands on the top edge.
func unitQuad() mesh {
	var m mesh
	bl, br := geom.WorldCoords{X: -0.5, Y: -0.5}, geom.WorldCoords{X: 0.5, Y: -0.5}
	tr, tl := geom.WorldCoords{X: 0.5, Y: 0.5}, geom.WorldCoords{X: -0.5, Y: 0.5}
	m.vertex(bl, 0, 1)
	m.vertex(br, 1, 1)
	m.vertex(tr, 1, 0)
	m.vertex(bl, 0, 1)
	m.vertex(tr, 1, 0)
	m.vertex(tl, 0, 0)
	return m
}

// segment returns the rectangle covering the line from a to b drawn with the
// given thickness. A zero-length segment yields nothing.
func segment(a, b geom.WorldCoords, thickness float64) ([4]geom.WorldCoords, bool) {
	d := b.Point().Sub(a.Point())
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		return [4]geom.WorldCoords{}, false
	}
	n := geom.MakePoint(-d.Y, d.X).Scale(thickness / 2 / length)
	return [4]geom.WorldCoords{
		a.Point().Sub(n).World(),
		b.Point().Sub(n).World(),
		b.Point().Add(n).World(),
		a.Point().Add(n).World(),
	}, true
}

// square returns a square of the given side centered on c, turned
// counter-clockwise by degrees.
func square(c geom.WorldCoords, side, degrees float64) [4]geom.WorldCoords {
	m := geom.Translation(c.Point()).Mul(geom.Rotation(degrees)).Mul(geom.Scaling(side, side))
	return [4]geom.WorldCoords{
		m.MulPoint(geom.MakePoint(-0.5, -0.5)).World(),
		m.MulPoint(geom.MakePoint(0.5, -0.5)).World(),
		m.MulPoint(geom.MakePoint(0.5, 0.5)).World(),
		m.MulPoint(geom.MakePoint(-0.5, 0.5)).World(),
	}
}

// arcSteps is how many segments approximate a full turn of the wedge arc.
const arcSteps = 64

// wedge returns the outline of the circular sector from pivot, starting at
// from and sweeping to to. from and to are expected to be equidistant from
// the pivot.
func wedge(pivot, from, to geom.WorldCoords) []geom.WorldCoords {
	a := from.Point().Sub(pivot.Point())
	b := to.Point().Sub(pivot.Point())
	sweep := math.Atan2(a.X*b.Y-a.Y*b.X, geom.Dot(a, b))

	steps := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * arcSteps))
	if steps < 1 {
		steps = 1
	}
	points := make([]geom.WorldCoords, 0, steps+2)
	points = append(points, pivot)
	for i := 0; i <= steps; i++ {
		r := geom.Rotation(sweep * float64(i) / float64(steps) * 180 / math.Pi)
		points = append(points, pivot.Point().Add(r.MulVector(a)).World())
	}
	points[len(points)-1] = to
	return points
}
