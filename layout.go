package splitview

import "math"

// DegenerateEpsilon is the world-space extent below which two players are
// treated as standing on the same spot.
const DegenerateEpsilon = 1e-6

// Layout is the normalized screen layout of the tracked players.
type Layout struct {
	// Positions holds one slot per player in [0, 1]², y-down.
	Positions [MaxViewpoints]Vec2
	// Count is the number of meaningful slots.
	Count int
	// Degenerate is set when two players coincide and both slots were pinned
	// to the center instead of being normalized.
	Degenerate bool
}

// NormalizeLayout maps up to two world positions into the unit square so that
// their bounding box fills it along the axis that is long relative to aspect
// and is centered along the other axis. Extra positions are ignored.
//
// A single position (or none) maps to the center. Coincident positions are
// degenerate and also map to the center.
func NormalizeLayout(world []Vec2, aspect float64) Layout {
	var l Layout
	l.Positions = [MaxViewpoints]Vec2{Center, Center}
	n := min(len(world), MaxViewpoints)
	if n <= 1 {
		l.Count = 1
		return l
	}
	l.Count = n

	lo, hi := world[0], world[0]
	for _, p := range world[1:n] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	ext := hi.Sub(lo)
	if ext.X < DegenerateEpsilon && ext.Y < DegenerateEpsilon {
		l.Degenerate = true
		return l
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		aspect = 1
	}

	// Pad the short axis symmetrically so the box matches the screen aspect.
	var diff Vec2
	if ext.X > ext.Y*aspect {
		diff.Y = (ext.X/aspect - ext.Y) / 2
	} else if ext.Y > ext.X/aspect {
		diff.X = (ext.Y*aspect - ext.X) / 2
	}
	ext = ext.Add(diff.Scale(2))

	for i := 0; i < n; i++ {
		p := world[i].Sub(lo).Add(diff)
		l.Positions[i] = Vec2{p.X / ext.X, p.Y / ext.Y}
	}
	return l
}
