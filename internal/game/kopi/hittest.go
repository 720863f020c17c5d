package kopi

import (
	kmath "github.com/Faultbox/kopimap/pkg/math"
)

// HitTest reports whether a cursor at pixel position p lies inside the icon
// drawn at offset and angle in a window of size vp.
//
// The icon shader rotates the quad, scales x by the aspect ratio and then
// translates by offset. HitTest undoes those steps in reverse order so the
// clickable area is exactly the drawn area.
func HitTest(p kmath.Vec2, vp kmath.Viewport, offset kmath.Vec2, angle float32) bool {
	if !vp.Valid() {
		return false
	}

	local := vp.ToNDC(p).Sub(offset)
	local.X /= vp.Aspect()
	local = local.Rotate(-angle)

	return abs(local.X) <= HalfWidth && abs(local.Y) <= HalfHeight
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
