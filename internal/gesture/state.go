// Package gesture turns a frame's worth of pointer and keyboard events into
// mutations of the viewport and the photo transforms.
//
// At most one gesture (a press-to-release interval) is live at a time. The
// gesture remembers the button that started it along with everything it needs
// to recompute its effect from scratch on every motion event, so a long drag
// never accumulates per-frame error.
package gesture

import (
	"fmt"

	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/rect"
)

// Tool decides what the primary button does.
type Tool int

const (
	PanView Tool = iota
	DragPhoto
	SelectPhoto
	RotationPoint
	DragToRotate
	DragToRotateAll

	numTools = iota
)

func (t Tool) String() string {
	switch t {
	case PanView:
		return "pan view"
	case DragPhoto:
		return "drag photo"
	case SelectPhoto:
		return "select photo"
	case RotationPoint:
		return "rotation point"
	case DragToRotate:
		return "drag to rotate"
	case DragToRotateAll:
		return "drag to rotate all"
	default:
		return fmt.Sprintf("tool(%d)", int(t))
	}
}

// BlendMode is how overlapping photos are composited. It only affects display.
type BlendMode int

const (
	Translucent BlendMode = iota // every photo at half opacity
	Opaque
	Additive

	numBlendModes = iota
)

func (b BlendMode) String() string {
	switch b {
	case Translucent:
		return "translucent"
	case Opaque:
		return "opaque"
	case Additive:
		return "additive"
	default:
		return fmt.Sprintf("blend(%d)", int(b))
	}
}

// Next returns the mode after b, wrapping around.
func (b BlendMode) Next() BlendMode { return (b + 1) % numBlendModes }

// State is everything about the interaction that outlives a single event.
type State struct {
	Tool  Tool
	Blend BlendMode

	selected    int
	hasSelected bool
	pivot       geom.WorldCoords
	hasPivot    bool

	active gesture // nil when idle
}

// Selection returns the index of the selected photo, if any.
func (s *State) Selection() (int, bool) { return s.selected, s.hasSelected }

func (s *State) Select(i int) { s.selected, s.hasSelected = i, true }

func (s *State) Deselect() { s.selected, s.hasSelected = 0, false }

// Pivot returns the recorded rotation point, if one has been placed.
func (s *State) Pivot() (geom.WorldCoords, bool) { return s.pivot, s.hasPivot }

func (s *State) SetPivot(p geom.WorldCoords) { s.pivot, s.hasPivot = p, true }

func (s *State) ClearPivot() { s.pivot, s.hasPivot = geom.WorldCoords{}, false }

// Active reports whether a gesture is in flight.
func (s *State) Active() bool { return s.active != nil }

// gesture is one of *pan, *drag or *rotateDrag.
type gesture interface {
	button() input.Button
}

type pan struct {
	btn         input.Button
	startPixel  geom.PixelCoords
	startCamera geom.WorldCoords
}

type drag struct {
	btn            input.Button
	photo          int
	startPixel     geom.PixelCoords
	startTranslate geom.WorldCoords
}

// rotateDrag rotates one or more photos about the pivot. start and current are
// world pointer positions; each photo keeps its own press-time placement.
type rotateDrag struct {
	btn            input.Button
	start, current geom.WorldCoords
	photos         []photoStart
}

type photoStart struct {
	photo int
	start rect.Snapshot
}

func (g *pan) button() input.Button        { return g.btn }
func (g *drag) button() input.Button       { return g.btn }
func (g *rotateDrag) button() input.Button { return g.btn }
