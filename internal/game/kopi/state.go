// Package kopi implements the draggable, rotatable icon: its hit test, the
// drag/rotate state machine and the quadrant-driven sound switch.
package kopi

import (
	"math"

	kmath "github.com/Faultbox/kopimap/pkg/math"
)

// Icon half-extents in icon space, before the aspect correction.
const (
	HalfWidth  = 0.10
	HalfHeight = 0.15
)

// RotateStep is how far one secondary click turns the icon.
const RotateStep = float32(math.Pi / 4)

// Quadrant is one of the four screen regions used to pick a sound.
// Its value is the index of the clip it selects.
type Quadrant int

const (
	TopRight Quadrant = iota
	TopLeft
	BottomLeft
	BottomRight
)

// QuadrantCount is the number of quadrants, and of clips.
const QuadrantCount = 4

// String implements fmt.Stringer.
func (q Quadrant) String() string {
	switch q {
	case TopRight:
		return "top-right"
	case TopLeft:
		return "top-left"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// QuadrantOf classifies an NDC offset. Zero on either axis counts as
// non-negative.
func QuadrantOf(offset kmath.Vec2) Quadrant {
	right := offset.X >= 0
	top := offset.Y >= 0
	switch {
	case right && top:
		return TopRight
	case !right && top:
		return TopLeft
	case !right && !top:
		return BottomLeft
	default:
		return BottomRight
	}
}

// State is the icon's interaction state. It is owned by the render thread
// and needs no locking.
type State struct {
	Pressed    bool
	LastCursor kmath.Vec2 // window pixels
	Offset     kmath.Vec2 // NDC
	Angle      float32    // radians, [0, 2pi)
	Active     Quadrant
}

// NewState returns the start-up state: centred, unrotated, top-right sound.
func NewState() State {
	return State{Active: TopRight}
}
