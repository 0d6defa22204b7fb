package splitview

import "math"

// MaxViewpoints is the number of player viewpoints a session can composite.
const MaxViewpoints = 2

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to a shader.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the default split line color.
var ColorBlack = Color{0, 0, 0, 1}

// premultiplied returns the color as a premultiplied float32 vector, the
// layout Kage uniforms expect for vec4 colors.
func (c Color) premultiplied() []float32 {
	a := clamp01(c.A)
	return []float32{
		float32(clamp01(c.R) * a),
		float32(clamp01(c.G) * a),
		float32(clamp01(c.B) * a),
		float32(a),
	}
}

// Vec2 is a 2D vector used for world positions, normalized layout slots and
// camera placements.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// SqrLen returns the squared length of v.
func (v Vec2) SqrLen() float64 { return v.X*v.X + v.Y*v.Y }

// Lerp returns the linear interpolation between v and o by t.
// t is not clamped.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Center is the middle of the normalized layout square.
var Center = Vec2{0.5, 0.5}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// CompareFunc selects how a viewpoint id is tested against the boundary mask.
type CompareFunc uint8

const (
	CompareDisabled CompareFunc = iota // mask is not consulted
	CompareAlways                      // every pixel passes
	CompareEqual                       // pixel passes when the mask id equals the view id
)

// String returns the name of the compare function.
func (c CompareFunc) String() string {
	switch c {
	case CompareDisabled:
		return "disabled"
	case CompareAlways:
		return "always"
	case CompareEqual:
		return "equal"
	default:
		return "unknown"
	}
}

// TargetFormat describes the intended content of a render target.
type TargetFormat uint8

const (
	FormatColor     TargetFormat = iota // RGBA color
	FormatColorMask                     // color with a viewpoint mask attached
	FormatR8                            // single channel, stored in red
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
