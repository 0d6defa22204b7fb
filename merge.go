package splitview

import "math"

// SmoothingDistance is the width, in distance-ratio units, of the band above
// the merge threshold in which cameras slide between split and merged.
const SmoothingDistance = 1.0

// MergeState is the per-frame outcome of the merge controller.
type MergeState struct {
	// Ratio is 0 when fully split and 1 when fully merged.
	Ratio float64
	// ActiveViews is the number of viewpoints to capture (1 or 2).
	ActiveViews int
	// MergedPosition is the shared camera target in world space. Only
	// meaningful while Ratio > 0.
	MergedPosition Vec2
	// DistRatio is the squared world distance divided by the squared
	// on-screen threshold. Zero for single-view states.
	DistRatio float64
}

// Merged reports whether the state collapsed into one shared camera.
func (m MergeState) Merged() bool {
	return m.ActiveViews == 1 && m.Ratio == 1
}

// SingleView returns the state for sessions with at most one player.
func SingleView(position Vec2) MergeState {
	return MergeState{ActiveViews: 1, MergedPosition: position}
}

// ComputeMerge decides how far the two viewpoints are merged this frame. It
// is a pure function of its inputs; nothing carries over between frames.
//
// The threshold is the squared distance between the normalized slots scaled
// by orthoSize: the world separation at which the split layout stops showing
// anything a single camera would not. Squared distances are compared so no
// square root is taken.
func ComputeMerge(layout Layout, world [MaxViewpoints]Vec2, orthoSize float64, merging bool) MergeState {
	if layout.Count <= 1 {
		return SingleView(world[0])
	}
	if layout.Degenerate && !merging {
		return SingleView(world[0])
	}

	state := MergeState{ActiveViews: 2}
	if !merging {
		return state
	}

	var distRatio float64
	if !layout.Degenerate {
		threshold := layout.Positions[1].Sub(layout.Positions[0]).Scale(orthoSize).SqrLen()
		realDist := world[1].Sub(world[0]).SqrLen()
		switch {
		case threshold > 0:
			distRatio = realDist / threshold
		case realDist > 0:
			distRatio = math.Inf(1)
		}
	}
	state.DistRatio = distRatio

	if distRatio <= 1+SmoothingDistance {
		state.MergedPosition = world[0].Lerp(world[1], 0.5)
	}
	state.Ratio, state.ActiveViews = mergeRatioFor(distRatio)
	return state
}

// mergeRatioFor maps a distance ratio onto the merge ratio and the number of
// active viewpoints.
func mergeRatioFor(distRatio float64) (ratio float64, views int) {
	switch {
	case distRatio <= 1:
		return 1, 1
	case distRatio <= 1+SmoothingDistance:
		return 1 - (distRatio-1)/SmoothingDistance, 2
	default:
		return 0, 2
	}
}
