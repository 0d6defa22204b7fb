package splitview

import "github.com/tanema/gween/ease"

// PlaceViewpoints returns the world-space camera center for every viewpoint.
//
// Each camera is offset from its player so that the player lands on its
// normalized layout slot, then pulled toward the merged position by the merge
// ratio. easeFn reshapes that pull; nil means linear. Slots at or beyond
// merge.ActiveViews are filled with the merged position.
func PlaceViewpoints(layout Layout, world [MaxViewpoints]Vec2, merge MergeState, screen ScreenProperties, easeFn ease.TweenFunc) [MaxViewpoints]Vec2 {
	var out [MaxViewpoints]Vec2
	if layout.Count <= 1 {
		out[0] = world[0]
		out[1] = world[0]
		return out
	}

	t := easeRatio(merge.Ratio, easeFn)
	scale := Vec2{screen.AspectRatio, 1}.Scale(screen.OrthoSize)
	for i := 0; i < MaxViewpoints; i++ {
		if i >= merge.ActiveViews {
			out[i] = merge.MergedPosition
			continue
		}
		offset := Center.Sub(layout.Positions[i]).Mul(scale)
		out[i] = world[i].Add(offset).Lerp(merge.MergedPosition, t)
	}
	return out
}

// easeRatio applies a gween easing curve to a ratio in [0, 1]. The endpoints
// are pinned so that fully split and fully merged placements stay exact.
func easeRatio(ratio float64, easeFn ease.TweenFunc) float64 {
	if easeFn == nil || ratio <= 0 || ratio >= 1 {
		return ratio
	}
	return float64(easeFn(float32(ratio), 0, 1, 1))
}
