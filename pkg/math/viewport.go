package math

// Viewport is the window size in pixels.
type Viewport struct {
	Width, Height float32
}

// NewViewport builds a Viewport from integer window dimensions.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: float32(width), Height: float32(height)}
}

// Valid reports whether both dimensions are positive.
func (vp Viewport) Valid() bool {
	return vp.Width > 0 && vp.Height > 0
}

// Aspect returns height/width, or 1 for a degenerate viewport.
func (vp Viewport) Aspect() float32 {
	if !vp.Valid() {
		return 1
	}
	return vp.Height / vp.Width
}

// ToNDC converts a window pixel position (origin top-left, y down) into
// normalized device coordinates (origin centre, y up).
func (vp Viewport) ToNDC(p Vec2) Vec2 {
	return Vec2{
		X: 2*p.X/vp.Width - 1,
		Y: 1 - 2*p.Y/vp.Height,
	}
}

// DeltaToNDC converts a pixel displacement into an NDC displacement.
func (vp Viewport) DeltaToNDC(d Vec2) Vec2 {
	return Vec2{
		X: d.X / (vp.Width / 2),
		Y: -d.Y / (vp.Height / 2),
	}
}
