package gesture

import (
	"io"
	"log"
	"math"
	"os"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/irfansharif/panotool/internal/geom"
	"github.com/irfansharif/panotool/internal/input"
	"github.com/irfansharif/panotool/internal/rect"
	"github.com/irfansharif/panotool/internal/viewport"
)

var gestureLogger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("PANOTOOL_DEBUG_GESTURES") == "1" {
		gestureLogger = log.New(os.Stdout, "[gesture] ", log.Ltime|log.Lmicroseconds|log.Lmsgprefix)
	}
}

// Processor applies input events to a viewport and an ordered set of photo
// transforms. Photos earlier in the list win hit-tests.
type Processor struct {
	State

	Viewport *viewport.Viewport
	Photos   []*rect.Transform
	Wheel    input.WheelConvention

	cursor geom.PixelCoords // last known pointer position
}

// NewProcessor returns an idle processor with the PanView tool active.
func NewProcessor(vp *viewport.Viewport, photos []*rect.Transform, wheel input.WheelConvention) *Processor {
	return &Processor{
		Viewport: vp,
		Photos:   photos,
		Wheel:    wheel,
	}
}

// Cursor returns the last pointer position seen.
func (p *Processor) Cursor() geom.PixelCoords { return p.cursor }

// Process handles events in order and reports whether anything visible
// changed.
func (p *Processor) Process(events []input.Event) (redraw bool) {
	for _, e := range events {
		if p.handle(e) {
			redraw = true
		}
	}
	return redraw
}

func (p *Processor) handle(e input.Event) bool {
	// A release ends the gesture its button started, even if an overlay
	// consumed it.
	if e, ok := e.(input.PointerRelease); ok {
		return p.release(e)
	}
	if e.IsConsumed() {
		return false
	}

	switch e := e.(type) {
	case input.PointerPress:
		return p.press(e)
	case input.PointerMove:
		return p.move(e)
	case input.Scroll:
		return p.scroll(e)
	case input.KeyPress:
		return p.key(e)
	}
	return false
}

// toolFor returns what a press of b does. The auxiliary button always pans and
// the secondary button always drags.
func (p *Processor) toolFor(b input.Button) Tool {
	switch b {
	case input.Auxiliary:
		return PanView
	case input.Secondary:
		return DragPhoto
	default:
		return p.Tool
	}
}

func (p *Processor) press(e input.PointerPress) bool {
	p.cursor = e.Position
	if p.active != nil {
		gestureLogger.Printf("ignoring %s press, %T in flight", e.Button, p.active)
		return false
	}

	world := p.Viewport.PixelsToWorld(e.Position)
	switch p.toolFor(e.Button) {
	case PanView:
		p.active = &pan{btn: e.Button, startPixel: e.Position, startCamera: p.Viewport.CameraPosition}

	case DragPhoto:
		i, ok := p.dragTarget(world)
		if !ok {
			return false
		}
		p.active = &drag{btn: e.Button, photo: i, startPixel: e.Position, startTranslate: p.Photos[i].Translation()}

	case SelectPhoto:
		return p.cycleSelection(world)

	case RotationPoint:
		p.SetPivot(world)
		gestureLogger.Printf("pivot at %v", world)
		return true

	case DragToRotate:
		i, ok := p.Selection()
		if !ok || i >= len(p.Photos) {
			return false
		}
		p.active = &rotateDrag{
			btn:     e.Button,
			start:   world,
			current: world,
			photos:  []photoStart{{photo: i, start: p.Photos[i].Snapshot()}},
		}

	case DragToRotateAll:
		if len(p.Photos) == 0 {
			return false
		}
		g := &rotateDrag{btn: e.Button, start: world, current: world}
		for i, photo := range p.Photos {
			g.photos = append(g.photos, photoStart{photo: i, start: photo.Snapshot()})
		}
		p.active = g
	}

	gestureLogger.Printf("%s press at %v started %T", e.Button, world, p.active)
	return false
}

func (p *Processor) release(e input.PointerRelease) bool {
	p.cursor = e.Position
	if p.active == nil || p.active.button() != e.Button {
		return false
	}

	_, rotating := p.active.(*rotateDrag)
	gestureLogger.Printf("%s release ended %T", e.Button, p.active)
	p.active = nil
	return rotating // the wedge disappears
}

func (p *Processor) move(e input.PointerMove) bool {
	p.cursor = e.Position

	switch g := p.active.(type) {
	case *pan:
		p.Viewport.CameraPosition = g.startCamera.Sub(p.pixelDelta(g.startPixel, e.Position))
		return true

	case *drag:
		if g.photo >= len(p.Photos) {
			return false
		}
		p.Photos[g.photo].SetTranslation(g.startTranslate.Add(p.pixelDelta(g.startPixel, e.Position)))
		return true

	case *rotateDrag:
		g.current = p.Viewport.PixelsToWorld(e.Position)
		pivot, ok := p.Pivot()
		if !ok {
			return false
		}
		angle := signedAngle(pivot, g.start, g.current)
		for _, s := range g.photos {
			if s.photo >= len(p.Photos) {
				continue
			}
			photo := p.Photos[s.photo]
			photo.Restore(s.start)
			photo.RotateAroundPoint(angle, pivot)
		}
		return true
	}
	return false
}

// pixelDelta converts the pointer movement from a to b into a world offset.
// Pixel rows grow downwards, world y grows upwards.
func (p *Processor) pixelDelta(a, b geom.PixelCoords) geom.WorldCoords {
	wupp := p.Viewport.WorldUnitsPerPixel()
	return geom.WorldCoords{
		X: (b.X - a.X) * wupp,
		Y: -(b.Y - a.Y) * wupp,
	}
}

func (p *Processor) scroll(e input.Scroll) bool {
	p.cursor = e.Position

	var step func() bool
	switch d := p.Wheel.Normalize(e.Delta); {
	case d > 0:
		step = p.Viewport.ZoomIn
	case d < 0:
		step = p.Viewport.ZoomOut
	default:
		return false
	}
	if !ZoomAt(p.Viewport, e.Position, step) {
		return false
	}
	p.rebase()
	gestureLogger.Printf("zoom level %d around %v", p.Viewport.ZoomLevel(), e.Position)
	return true
}

// rebase restarts pixel-driven gestures from the current state, since the
// world size of a pixel just changed.
func (p *Processor) rebase() {
	switch g := p.active.(type) {
	case *pan:
		g.startPixel, g.startCamera = p.cursor, p.Viewport.CameraPosition
	case *drag:
		if g.photo < len(p.Photos) {
			g.startPixel, g.startTranslate = p.cursor, p.Photos[g.photo].Translation()
		}
	}
}

func (p *Processor) key(e input.KeyPress) bool {
	switch e.Key {
	case input.Key1, input.Key2, input.Key3, input.Key4, input.Key5, input.Key6:
		tool := Tool(e.Key - input.Key1)
		if tool == p.Tool || tool >= numTools {
			return false
		}
		p.Tool = tool
		gestureLogger.Printf("tool: %s", tool)
		return true

	case input.KeyTab:
		p.Blend = p.Blend.Next()
		return true

	case input.KeyEscape:
		_, selected := p.Selection()
		_, pivoted := p.Pivot()
		p.Deselect()
		p.ClearPivot()
		return selected || pivoted

	case input.KeyR:
		return p.recenter()
	}
	return false
}

// recenter moves the camera onto the selected photo, or onto the mean center
// of all photos when nothing is selected. The zoom level is left alone.
func (p *Processor) recenter() bool {
	if len(p.Photos) == 0 {
		return false
	}
	var target geom.WorldCoords
	if i, ok := p.Selection(); ok && i < len(p.Photos) {
		target = p.Photos[i].Translation()
	} else {
		for _, photo := range p.Photos {
			target = target.Add(photo.Translation())
		}
		target = geom.WorldCoords{X: target.X / float64(len(p.Photos)), Y: target.Y / float64(len(p.Photos))}
	}
	if target == p.Viewport.CameraPosition {
		return false
	}
	p.Viewport.CameraPosition = target
	p.rebase()
	gestureLogger.Printf("recentered on %v", target)
	return true
}

// hits returns the indexes of every photo containing w, in list order.
func (p *Processor) hits(w geom.WorldCoords) []int {
	var hits []int
	for i, photo := range p.Photos {
		if photo.Contains(w) {
			hits = append(hits, i)
		}
	}
	return hits
}

// dragTarget picks the photo a drag at w moves. With a selection only the
// selected photo can be dragged.
func (p *Processor) dragTarget(w geom.WorldCoords) (int, bool) {
	if i, ok := p.Selection(); ok {
		if i < len(p.Photos) && p.Photos[i].Contains(w) {
			return i, true
		}
		return 0, false
	}
	if hits := p.hits(w); len(hits) > 0 {
		return hits[0], true
	}
	return 0, false
}

// cycleSelection selects the photo under w following the current selection in
// list order, wrapping around. Clicking with nothing under the cursor
// deselects.
func (p *Processor) cycleSelection(w geom.WorldCoords) bool {
	hits := p.hits(w)
	prev, had := p.Selection()
	if len(hits) == 0 {
		p.Deselect()
		return had
	}

	next := hits[0]
	if had {
		if i := slices.Index(hits, prev); i >= 0 {
			next = hits[(i+1)%len(hits)]
		}
	}
	p.Select(next)
	gestureLogger.Printf("selected photo %d of hits %v", next, hits)
	return !had || next != prev
}

// signedAngle returns the counter-clockwise angle in degrees from pivot->from
// to pivot->to, in (-180, 180].
func signedAngle(pivot, from, to geom.WorldCoords) float64 {
	a := r2.Sub(r2.Vec(from), r2.Vec(pivot))
	b := r2.Sub(r2.Vec(to), r2.Vec(pivot))
	return math.Atan2(r2.Cross(a, b), r2.Dot(a, b)) * 180 / math.Pi
}

// Wedge returns the triangle swept by an in-flight rotation: the pivot, the
// press point pulled onto the circle through the current point, and the
// current point.
func (p *Processor) Wedge() ([3]geom.WorldCoords, bool) {
	g, ok := p.active.(*rotateDrag)
	if !ok {
		return [3]geom.WorldCoords{}, false
	}
	pivot, ok := p.Pivot()
	if !ok {
		return [3]geom.WorldCoords{}, false
	}

	from := r2.Sub(r2.Vec(g.start), r2.Vec(pivot))
	to := r2.Sub(r2.Vec(g.current), r2.Vec(pivot))
	if r2.Norm(from) == 0 || r2.Norm(to) == 0 {
		return [3]geom.WorldCoords{}, false
	}
	resized := r2.Add(r2.Vec(pivot), r2.Scale(r2.Norm(to), r2.Unit(from)))
	return [3]geom.WorldCoords{pivot, geom.WorldCoords(resized), g.current}, true
}
