package splitview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Camera is an orthographic view of the world rendered into a viewport.
// OrthoSize world units span half the viewport height.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// OrthoSize is the visible half-height in world units.
	OrthoSize float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	cacheKey      [7]float64
}

// NewCamera creates a camera centered on pos.
func NewCamera(pos Vec2, orthoSize float64, viewport Rect) Camera {
	return Camera{X: pos.X, Y: pos.Y, OrthoSize: orthoSize, Viewport: viewport}
}

// Position returns the camera center in world space.
func (c *Camera) Position() Vec2 {
	return Vec2{c.X, c.Y}
}

// Zoom returns the number of screen pixels per world unit.
func (c *Camera) Zoom() float64 {
	if c.OrthoSize <= 0 {
		return 1
	}
	return c.Viewport.Height / (2 * c.OrthoSize)
}

// computeViewMatrix recomputes the cached view matrix when any input changed.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	key := [7]float64{c.X, c.Y, c.OrthoSize, c.Viewport.X, c.Viewport.Y, c.Viewport.Width, c.Viewport.Height}
	if key == c.cacheKey && c.viewMatrix[0] != 0 {
		return c.viewMatrix
	}
	c.cacheKey = key

	z := c.Zoom()
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	c.viewMatrix = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ScreenToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// GeoM returns the view matrix as an ebiten.GeoM. Scene drawers concatenate
// it after their own local transforms.
func (c *Camera) GeoM() ebiten.GeoM {
	m := c.computeViewMatrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix laid out as
// [a, b, c, d, tx, ty]. Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
