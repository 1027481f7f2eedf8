// Package pto reads control points out of Hugin panorama project (.pto) files.
//
// Only the control point block is understood:
//
//	# control points
//	c n0 N1 x568.54 y117.69 X54.45 Y98.73 t0
//	c n1 N2 x111.1 y222.2 X333.3 Y444.4 t0
//
// Each line pairs a pixel in image n with the matching pixel in image N.
package pto

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/irfansharif/panotool/internal/geom"
)

const header = "# control points"

var (
	ErrNoSection       = errors.New("no control point section")
	ErrNoControlPoints = errors.New("control point section is empty")
)

// Point is a pixel position inside one image (origin top-left, y down).
type Point struct {
	Image uint64
	X, Y  float64
}

// Pair is one control point line: the same feature seen in two images.
type Pair struct {
	A, B Point
}

var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Key", Pattern: `[a-zA-Z]`},
	{Name: "Number", Pattern: `[-+]?(\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

type controlLine struct {
	Fields []*field `parser:"\"c\" @@+"`
}

type field struct {
	Pos   lexer.Position
	Key   string `parser:"@Key"`
	Value string `parser:"@Number"`
}

var lineParser = participle.MustBuild[controlLine](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace"),
)

// Parse returns every control point pair in a .pto file's contents. Text
// before the control point header is ignored, as is anything after the block.
// The block must hold at least one pair and every control line in it must be
// well formed.
func Parse(contents string) ([]Pair, error) {
	i := strings.Index(contents, header)
	if i < 0 {
		return nil, ErrNoSection
	}
	lines := strings.Split(contents[i:], "\n")
	offset := strings.Count(contents[:i], "\n") + 1 // 1-indexed line of the header

	var pairs []Pair
	for n, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "c ") {
			break
		}
		pair, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", offset+n+1, err)
		}
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		return nil, ErrNoControlPoints
	}
	return pairs, nil
}

// ParseFile reads and parses the .pto file at path.
func ParseFile(path string) ([]Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pairs, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pairs, nil
}

func parseLine(line string) (Pair, error) {
	parsed, err := lineParser.ParseString("", line)
	if err != nil {
		return Pair{}, err
	}

	values := make(map[string]string, len(parsed.Fields))
	for _, f := range parsed.Fields {
		if _, ok := values[f.Key]; ok {
			return Pair{}, fmt.Errorf("%s: duplicate field %q", f.Pos, f.Key)
		}
		values[f.Key] = f.Value
	}
	for _, key := range []string{"n", "N", "x", "y", "X", "Y", "t"} {
		if _, ok := values[key]; !ok {
			return Pair{}, fmt.Errorf("missing field %q", key)
		}
	}
	if len(values) != 7 {
		return Pair{}, fmt.Errorf("unexpected fields in %q", line)
	}

	var p Pair
	var errs []error
	id := func(key string, dst *uint64) {
		v, err := strconv.ParseUint(values[key], 10, 64)
		errs = append(errs, err)
		*dst = v
	}
	coord := func(key string, dst *float64) {
		v, err := strconv.ParseFloat(values[key], 64)
		errs = append(errs, err)
		*dst = v
	}
	id("n", &p.A.Image)
	id("N", &p.B.Image)
	coord("x", &p.A.X)
	coord("y", &p.A.Y)
	coord("X", &p.B.X)
	coord("Y", &p.B.Y)
	var kind uint64 // t0 ordinary, t1/t2 line constraints; all placed the same
	id("t", &kind)
	if err := errors.Join(errs...); err != nil {
		return Pair{}, err
	}
	return p, nil
}

// PointsForImage returns, in file order, the pixel of every pair that touches
// image, from whichever side of the pair it is on.
func PointsForImage(pairs []Pair, image uint64) []geom.PixelCoords {
	var points []geom.PixelCoords
	for _, pair := range pairs {
		for _, p := range []Point{pair.A, pair.B} {
			if p.Image == image {
				points = append(points, geom.PixelCoords{X: p.X, Y: p.Y})
			}
		}
	}
	return points
}
