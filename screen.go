package splitview

import "math"

// orthoEpsilon is the smallest ortho size change treated as a real change.
const orthoEpsilon = 1e-6

// ScreenProperties holds the output resolution and orthographic projection
// used by one rendering session.
type ScreenProperties struct {
	Width  int
	Height int
	// AspectRatio is Width / Height. Kept in sync by Resize.
	AspectRatio float64
	// OrthoSize is the orthographic half-height in world units.
	OrthoSize float64
}

// NewScreenProperties returns properties for the given resolution.
func NewScreenProperties(width, height int, orthoSize float64) ScreenProperties {
	s := ScreenProperties{OrthoSize: math.Max(orthoSize, 0)}
	s.Resize(width, height)
	return s
}

// Resize updates the resolution and aspect ratio. It reports false, leaving
// the properties untouched, when the size is unchanged or invalid.
func (s *ScreenProperties) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if s.Width == width && s.Height == height {
		return false
	}
	s.Width = width
	s.Height = height
	s.AspectRatio = float64(width) / float64(height)
	return true
}

// SetOrthoSize updates the orthographic half-height. Negative sizes clamp to
// zero. It reports whether the value actually changed.
func (s *ScreenProperties) SetOrthoSize(orthoSize float64) bool {
	orthoSize = math.Max(orthoSize, 0)
	if math.Abs(s.OrthoSize-orthoSize) < orthoEpsilon {
		return false
	}
	s.OrthoSize = orthoSize
	return true
}

// Valid reports whether the properties describe a drawable screen.
func (s ScreenProperties) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// LineThickness returns the split line thickness in pixels for this height.
func (s ScreenProperties) LineThickness() float64 {
	return float64(s.Height) / 200
}
