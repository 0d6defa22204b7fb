package splitview

import (
	"math"
	"testing"
)

func TestNormalizeLayoutSinglePlayer(t *testing.T) {
	for _, world := range [][]Vec2{nil, {}, {{3, -7}}} {
		l := NormalizeLayout(world, 16.0/9)
		if l.Count != 1 {
			t.Errorf("Count = %d, want 1", l.Count)
		}
		for i, p := range l.Positions {
			if p != Center {
				t.Errorf("Positions[%d] = %v, want %v", i, p, Center)
			}
		}
	}
}

func TestNormalizeLayoutHorizontal(t *testing.T) {
	l := NormalizeLayout([]Vec2{{0, 0}, {10, 0}}, 1)
	want := [2]Vec2{{0, 0.5}, {1, 0.5}}
	for i := range want {
		if !approxEqual(l.Positions[i].X, want[i].X, epsilon) || !approxEqual(l.Positions[i].Y, want[i].Y, epsilon) {
			t.Errorf("Positions[%d] = %v, want %v", i, l.Positions[i], want[i])
		}
	}
}

func TestNormalizeLayoutPadsXOnTallBox(t *testing.T) {
	// Square box on a 2:1 screen: X is padded by half the extent each side.
	l := NormalizeLayout([]Vec2{{0, 0}, {4, 4}}, 2)
	want := [2]Vec2{{0.25, 0}, {0.75, 1}}
	for i := range want {
		if !approxEqual(l.Positions[i].X, want[i].X, epsilon) || !approxEqual(l.Positions[i].Y, want[i].Y, epsilon) {
			t.Errorf("Positions[%d] = %v, want %v", i, l.Positions[i], want[i])
		}
	}
}

func TestNormalizeLayoutPaddingSymmetry(t *testing.T) {
	cases := []struct {
		a, b   Vec2
		aspect float64
	}{
		{Vec2{-10, 0}, Vec2{10, 0}, 16.0 / 9},
		{Vec2{0, -3}, Vec2{0, 8}, 16.0 / 9},
		{Vec2{1, 2}, Vec2{7, -4}, 4.0 / 3},
		{Vec2{5, 5}, Vec2{-2, 9}, 0.5},
		{Vec2{100, 100}, Vec2{100.5, 101}, 21.0 / 9},
	}
	for _, tc := range cases {
		l := NormalizeLayout([]Vec2{tc.a, tc.b}, tc.aspect)
		p0, p1 := l.Positions[0], l.Positions[1]

		mid := p0.Lerp(p1, 0.5)
		if !approxEqual(mid.X, 0.5, 1e-9) || !approxEqual(mid.Y, 0.5, 1e-9) {
			t.Errorf("%v %v: midpoint = %v, want centered", tc.a, tc.b, mid)
		}
		dx := math.Abs(p1.X - p0.X)
		dy := math.Abs(p1.Y - p0.Y)
		if !approxEqual(math.Max(dx, dy), 1, 1e-9) {
			t.Errorf("%v %v: long axis extent = %v, want 1", tc.a, tc.b, math.Max(dx, dy))
		}
		for i, p := range l.Positions {
			if p.X < -1e-12 || p.X > 1+1e-12 || p.Y < -1e-12 || p.Y > 1+1e-12 {
				t.Errorf("%v %v: Positions[%d] = %v outside unit square", tc.a, tc.b, i, p)
			}
		}
	}
}

func TestNormalizeLayoutDeterministic(t *testing.T) {
	world := []Vec2{{-3.25, 8}, {14, 0.5}}
	a := NormalizeLayout(world, 16.0/9)
	b := NormalizeLayout(world, 16.0/9)
	if a != b {
		t.Errorf("NormalizeLayout not deterministic: %v != %v", a, b)
	}
}

func TestNormalizeLayoutDegenerate(t *testing.T) {
	l := NormalizeLayout([]Vec2{{3, 4}, {3, 4 + 1e-9}}, 16.0/9)
	if !l.Degenerate {
		t.Fatal("Degenerate = false, want true")
	}
	for i, p := range l.Positions {
		if !p.IsFinite() || p != Center {
			t.Errorf("Positions[%d] = %v, want %v", i, p, Center)
		}
	}
}

func TestNormalizeLayoutBadAspect(t *testing.T) {
	for _, aspect := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		l := NormalizeLayout([]Vec2{{0, 0}, {2, 1}}, aspect)
		for i, p := range l.Positions {
			if !p.IsFinite() {
				t.Errorf("aspect %v: Positions[%d] = %v, want finite", aspect, i, p)
			}
		}
	}
}

func TestNormalizeLayoutIgnoresExtra(t *testing.T) {
	l := NormalizeLayout([]Vec2{{0, 0}, {10, 0}, {1000, 1000}}, 1)
	if l.Count != MaxViewpoints {
		t.Errorf("Count = %d, want %d", l.Count, MaxViewpoints)
	}
	if !approxEqual(l.Positions[1].X, 1, epsilon) {
		t.Errorf("Positions[1].X = %v, want 1", l.Positions[1].X)
	}
}
