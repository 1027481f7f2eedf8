// Package input is the event vocabulary the window layer hands to the gesture
// processor once per frame. Positions are raw pointer pixels (origin top-left,
// y down), already scaled to framebuffer pixels.
package input

import (
	"fmt"

	"github.com/irfansharif/panotool/internal/geom"
)

// Button identifies a pointer button.
type Button int

const (
	Primary   Button = iota // usually left
	Secondary               // usually right
	Auxiliary               // usually middle
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Auxiliary:
		return "auxiliary"
	default:
		return fmt.Sprintf("button(%d)", int(b))
	}
}

// Key identifies the keys the processor reacts to. Anything else arrives as
// KeyOther.
type Key int

const (
	KeyOther Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	KeyTab
	KeyEscape
	KeyR
)

// Event is one of PointerPress, PointerRelease, PointerMove, Scroll or
// KeyPress.
type Event interface {
	// IsConsumed reports whether an overlay already handled the event.
	IsConsumed() bool
}

type PointerPress struct {
	Button   Button
	Position geom.PixelCoords
	Consumed bool
}

type PointerRelease struct {
	Button   Button
	Position geom.PixelCoords
	Consumed bool
}

type PointerMove struct {
	Position geom.PixelCoords
	Consumed bool
}

// Scroll carries the vertical wheel delta as reported by the host, before any
// WheelConvention is applied.
type Scroll struct {
	Delta    float64
	Position geom.PixelCoords
	Consumed bool
}

type KeyPress struct {
	Key      Key
	Consumed bool
}

func (e PointerPress) IsConsumed() bool   { return e.Consumed }
func (e PointerRelease) IsConsumed() bool { return e.Consumed }
func (e PointerMove) IsConsumed() bool    { return e.Consumed }
func (e Scroll) IsConsumed() bool         { return e.Consumed }
func (e KeyPress) IsConsumed() bool       { return e.Consumed }

// WheelConvention maps a host's wheel delta onto zoom direction. After
// normalization a positive delta zooms in.
type WheelConvention int

const (
	// Natural treats a positive host delta (scrolling up/away on most
	// platforms) as zoom in.
	Natural WheelConvention = iota
	// Inverted flips the host delta, for platforms reporting the opposite sign.
	Inverted
)

// Normalize returns delta expressed in the zoom-in-is-positive convention.
func (c WheelConvention) Normalize(delta float64) float64 {
	if c == Inverted {
		return -delta
	}
	return delta
}

func (c WheelConvention) String() string {
	if c == Inverted {
		return "inverted"
	}
	return "natural"
}

// ParseWheelConvention accepts "natural", "inverted" or the empty string
// (natural).
func ParseWheelConvention(s string) (WheelConvention, error) {
	switch s {
	case "", "natural":
		return Natural, nil
	case "inverted":
		return Inverted, nil
	default:
		return Natural, fmt.Errorf("unknown wheel convention %q (want natural or inverted)", s)
	}
}
