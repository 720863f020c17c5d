package kopi

import (
	"go.uber.org/zap"

	"github.com/Faultbox/kopimap/internal/logger"
	kmath "github.com/Faultbox/kopimap/pkg/math"
)

// Controller applies pointer events to the icon state.
type Controller struct {
	state    State
	switcher *Switcher
}

// NewController creates a controller in the start-up state. The switcher may
// be nil, in which case releases only update the state.
func NewController(sw *Switcher) *Controller {
	c := &Controller{
		state:    NewState(),
		switcher: sw,
	}
	if sw != nil {
		c.state.Active = sw.Active()
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.state.Pressed
}

// PressPrimary begins a drag if p hits the icon.
func (c *Controller) PressPrimary(p kmath.Vec2, vp kmath.Viewport) bool {
	if !HitTest(p, vp, c.state.Offset, c.state.Angle) {
		return false
	}
	c.state.Pressed = true
	c.state.LastCursor = p
	logger.Debug("drag started", zap.Float32("x", p.X), zap.Float32("y", p.Y))
	return true
}

// Move drags the icon by the pointer displacement since the last event.
func (c *Controller) Move(p kmath.Vec2, vp kmath.Viewport) {
	if !c.state.Pressed || !vp.Valid() {
		return
	}
	delta := vp.DeltaToNDC(p.Sub(c.state.LastCursor))
	c.state.Offset = c.state.Offset.Add(delta)
	c.state.LastCursor = p
}

// ReleasePrimary ends a drag and re-evaluates the sound quadrant. A release
// with no drag in progress does nothing.
func (c *Controller) ReleasePrimary() {
	if !c.state.Pressed {
		return
	}
	c.state.Pressed = false

	q := QuadrantOf(c.state.Offset)
	switched := false
	if c.switcher != nil {
		switched = c.switcher.Update(q)
	}
	c.state.Active = q

	logger.Debug("drag ended",
		zap.Float32("offsetX", c.state.Offset.X),
		zap.Float32("offsetY", c.state.Offset.Y),
		zap.Stringer("quadrant", q),
		zap.Bool("switched", switched),
	)
}

// PressSecondary rotates the icon by RotateStep if p hits it.
func (c *Controller) PressSecondary(p kmath.Vec2, vp kmath.Viewport) bool {
	if !HitTest(p, vp, c.state.Offset, c.state.Angle) {
		return false
	}
	c.state.Angle = kmath.WrapAngle(c.state.Angle + RotateStep)
	logger.Debug("icon rotated", zap.Float32("angle", c.state.Angle))
	return true
}
