package splitview

import (
	"math"
	"testing"
)

func mergeFor(a, b Vec2, aspect, ortho float64, merging bool) MergeState {
	world := [MaxViewpoints]Vec2{a, b}
	l := NormalizeLayout(world[:], aspect)
	return ComputeMerge(l, world, ortho, merging)
}

func TestMergeIdenticalPositions(t *testing.T) {
	p := Vec2{3, 4}
	m := mergeFor(p, p, 16.0/9, 5, true)
	if m.ActiveViews != 1 {
		t.Errorf("ActiveViews = %d, want 1", m.ActiveViews)
	}
	if m.Ratio != 1 {
		t.Errorf("Ratio = %v, want 1", m.Ratio)
	}
	if m.MergedPosition != p {
		t.Errorf("MergedPosition = %v, want %v", m.MergedPosition, p)
	}
	if !m.Merged() {
		t.Error("Merged() = false, want true")
	}
}

func TestMergeFarApart(t *testing.T) {
	m := mergeFor(Vec2{-10, 0}, Vec2{10, 0}, 16.0/9, 2, true)
	if m.ActiveViews != 2 {
		t.Errorf("ActiveViews = %d, want 2", m.ActiveViews)
	}
	if m.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0", m.Ratio)
	}
	// threshold = |(1,0)*2|^2 = 4, real = 400
	if !approxEqual(m.DistRatio, 100, 1e-9) {
		t.Errorf("DistRatio = %v, want 100", m.DistRatio)
	}
}

func TestMergeTransitionBand(t *testing.T) {
	// Horizontal pair on a wide screen normalizes to (0,0.5),(1,0.5), so the
	// threshold is ortho^2 = 25 and distRatio = d^2/25.
	d := math.Sqrt(1.5 * 25)
	m := mergeFor(Vec2{0, 0}, Vec2{d, 0}, 16.0/9, 5, true)
	if m.ActiveViews != 2 {
		t.Errorf("ActiveViews = %d, want 2", m.ActiveViews)
	}
	if !approxEqual(m.Ratio, 0.5, 1e-9) {
		t.Errorf("Ratio = %v, want 0.5", m.Ratio)
	}
	want := Vec2{d / 2, 0}
	if !approxEqual(m.MergedPosition.X, want.X, epsilon) || !approxEqual(m.MergedPosition.Y, want.Y, epsilon) {
		t.Errorf("MergedPosition = %v, want %v", m.MergedPosition, want)
	}
}

func TestMergeMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.5; d < 20; d += 0.25 {
		m := mergeFor(Vec2{0, 0}, Vec2{d, 0}, 16.0/9, 5, true)
		if m.Ratio > prev {
			t.Fatalf("Ratio increased at distance %v: %v > %v", d, m.Ratio, prev)
		}
		if m.Ratio < 0 || m.Ratio > 1 {
			t.Fatalf("Ratio = %v at distance %v, want within [0,1]", m.Ratio, d)
		}
		prev = m.Ratio
	}
}

func TestMergeBoundaryContinuity(t *testing.T) {
	const h = 1e-9
	tests := []struct {
		d     float64
		ratio float64
		views int
	}{
		{1 - h, 1, 1},
		{1, 1, 1},
		{1 + h, 1, 2},
		{2 - h, 0, 2},
		{2, 0, 2},
		{2 + h, 0, 2},
	}
	for _, tt := range tests {
		ratio, views := mergeRatioFor(tt.d)
		if !approxEqual(ratio, tt.ratio, 1e-6) {
			t.Errorf("mergeRatioFor(%v) ratio = %v, want %v", tt.d, ratio, tt.ratio)
		}
		if views != tt.views {
			t.Errorf("mergeRatioFor(%v) views = %d, want %d", tt.d, views, tt.views)
		}
	}
}

func TestMergeDisabled(t *testing.T) {
	m := mergeFor(Vec2{0, 0}, Vec2{1, 0}, 16.0/9, 5, false)
	if m.ActiveViews != 2 || m.Ratio != 0 {
		t.Errorf("got views=%d ratio=%v, want views=2 ratio=0", m.ActiveViews, m.Ratio)
	}

	p := Vec2{2, 2}
	m = mergeFor(p, p, 16.0/9, 5, false)
	if m.ActiveViews != 1 || m.Ratio != 0 || m.MergedPosition != p {
		t.Errorf("degenerate without merging = %+v, want single view at %v", m, p)
	}
}

func TestMergeZeroOrtho(t *testing.T) {
	m := mergeFor(Vec2{0, 0}, Vec2{1, 0}, 16.0/9, 0, true)
	if !math.IsInf(m.DistRatio, 1) {
		t.Errorf("DistRatio = %v, want +Inf", m.DistRatio)
	}
	if m.ActiveViews != 2 || m.Ratio != 0 {
		t.Errorf("got views=%d ratio=%v, want views=2 ratio=0", m.ActiveViews, m.Ratio)
	}
}

func TestMergeSinglePlayer(t *testing.T) {
	world := [MaxViewpoints]Vec2{{4, 4}}
	l := NormalizeLayout(world[:1], 16.0/9)
	m := ComputeMerge(l, world, 5, true)
	if m.ActiveViews != 1 || m.Ratio != 0 {
		t.Errorf("got views=%d ratio=%v, want views=1 ratio=0", m.ActiveViews, m.Ratio)
	}
}
