// Package math provides the small amount of 2D math the demo needs.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float32) Vec2 {
	sin, cos := math.Sincos(float64(angle))
	s, c := float32(sin), float32(cos)
	return Vec2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// TwoPi is a full turn in radians.
const TwoPi = float32(2 * math.Pi)

// angleEpsilon absorbs float32 drift so repeated fractional turns land on 0.
const angleEpsilon = 1e-5

// WrapAngle maps an angle in radians into [0, 2pi).
func WrapAngle(a float32) float32 {
	a = float32(math.Mod(float64(a), float64(TwoPi)))
	if a < 0 {
		a += TwoPi
	}
	if a >= TwoPi-angleEpsilon {
		a = 0
	}
	return a
}
