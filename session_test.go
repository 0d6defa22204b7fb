package splitview

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func fixed(p Vec2) Tracker {
	return TrackerFunc(func() Vec2 { return p })
}

func newTestSession(cfg Config) (*Session, *fakeBackend, *bytes.Buffer) {
	var buf bytes.Buffer
	b := &fakeBackend{}
	s := NewSession(b, cfg, WithLogger(log.New(&buf)))
	return s, b, &buf
}

func TestSessionClampsPlayerCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerCount = 3
	s, _, buf := newTestSession(cfg)
	s.Track(fixed(Vec2{-10, 0}), fixed(Vec2{10, 0}))

	for i := 0; i < 3; i++ {
		f := s.Plan(1920, 1080)
		if f.PlayerCount != 2 {
			t.Fatalf("PlayerCount = %d, want 2", f.PlayerCount)
		}
		if f.ActiveViews != 2 {
			t.Errorf("ActiveViews = %d, want 2", f.ActiveViews)
		}
	}
	if n := strings.Count(buf.String(), "clamping"); n != 1 {
		t.Errorf("got %d clamp warnings, want 1:\n%s", n, buf.String())
	}

	// A new misconfiguration is reported again.
	s.Config.PlayerCount = 5
	s.Plan(1920, 1080)
	if n := strings.Count(buf.String(), "clamping"); n != 2 {
		t.Errorf("got %d clamp warnings after change, want 2", n)
	}
}

func TestSessionClampsToMaxViewpoints(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerCount = 3
	s, _, buf := newTestSession(cfg)
	s.Track(fixed(Vec2{0, 0}), fixed(Vec2{1, 0}), fixed(Vec2{2, 0}))

	f := s.Plan(800, 600)
	if f.PlayerCount != MaxViewpoints {
		t.Errorf("PlayerCount = %d, want %d", f.PlayerCount, MaxViewpoints)
	}
	if !strings.Contains(buf.String(), "supported viewpoints") {
		t.Errorf("missing max viewpoints warning:\n%s", buf.String())
	}
}

func TestSessionNoPlayersUsesOrigin(t *testing.T) {
	origin := Vec2{3, 4}
	var buf bytes.Buffer
	s := NewSession(&fakeBackend{}, DefaultConfig(), WithLogger(log.New(&buf)), WithOrigin(origin))

	f := s.Plan(1280, 720)
	if f.PlayerCount != 0 || f.ActiveViews != 1 {
		t.Errorf("PlayerCount=%d ActiveViews=%d, want 0 and 1", f.PlayerCount, f.ActiveViews)
	}
	if f.Merge.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0", f.Merge.Ratio)
	}
	if f.Layout.Positions[0] != Center {
		t.Errorf("slot 0 = %v, want center", f.Layout.Positions[0])
	}
	if f.Cameras[0].Position() != origin {
		t.Errorf("camera 0 = %v, want %v", f.Cameras[0].Position(), origin)
	}
}

func TestSessionSinglePlayer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PlayerCount = 1
	s, _, _ := newTestSession(cfg)
	s.Track(fixed(Vec2{5, 5}), fixed(Vec2{50, 50}))

	f := s.Plan(1280, 720)
	if f.ActiveViews != 1 || f.Merge.Ratio != 0 {
		t.Errorf("ActiveViews=%d Ratio=%v, want 1 and 0", f.ActiveViews, f.Merge.Ratio)
	}
	if f.Cameras[0].Position() != (Vec2{5, 5}) {
		t.Errorf("camera 0 = %v, want (5,5)", f.Cameras[0].Position())
	}
}

func TestSessionCoincidentPlayers(t *testing.T) {
	s, _, _ := newTestSession(DefaultConfig())
	p := Vec2{3, 4}
	s.Track(fixed(p), fixed(p))

	f := s.Plan(1600, 900)
	if !f.Layout.Degenerate {
		t.Error("Degenerate = false, want true")
	}
	if f.ActiveViews != 1 || f.Merge.Ratio != 1 {
		t.Errorf("ActiveViews=%d Ratio=%v, want 1 and 1", f.ActiveViews, f.Merge.Ratio)
	}
	for i, cam := range f.Cameras {
		if !cam.Position().IsFinite() || cam.Position() != p {
			t.Errorf("camera %d = %v, want %v", i, cam.Position(), p)
		}
	}
}

func TestSessionRender(t *testing.T) {
	s, b, _ := newTestSession(DefaultConfig())
	s.Track(fixed(Vec2{-10, 0}), fixed(Vec2{10, 0}))
	dst := newTarget("dst", 1280, 720)

	f, err := s.Render(newTarget("src", 1280, 720), dst)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if f.Screen.Width != 1280 || f.Screen.Height != 720 {
		t.Errorf("screen = %dx%d, want 1280x720", f.Screen.Width, f.Screen.Height)
	}
	if dst.writes != 1 {
		t.Errorf("dst writes = %d, want 1", dst.writes)
	}
	if last := b.ops[len(b.ops)-1]; last != "alpha-blend>dst" {
		t.Errorf("last op = %q, want alpha-blend>dst", last)
	}
	if s.LastFrame().ActiveViews != f.ActiveViews {
		t.Error("LastFrame does not match the rendered frame")
	}
}

func TestSessionRenderResize(t *testing.T) {
	s, b, _ := newTestSession(DefaultConfig())
	s.Track(fixed(Vec2{-10, 0}), fixed(Vec2{10, 0}))

	if _, err := s.Render(nil, newTarget("dst", 1920, 1080)); err != nil {
		t.Fatal(err)
	}
	f, err := s.Render(nil, newTarget("dst", 1280, 720))
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(f.Screen.AspectRatio, 1280.0/720, epsilon) {
		t.Errorf("AspectRatio = %f, want %f", f.Screen.AspectRatio, 1280.0/720)
	}
	if b.allocs != 6 {
		t.Errorf("allocs = %d, want 6", b.allocs)
	}
	s.Close()
	if live := b.live(); len(live) != 0 {
		t.Errorf("%d targets live after Close", len(live))
	}
}

func TestSessionRenderSkipsFrame(t *testing.T) {
	s, b, buf := newTestSession(DefaultConfig())
	s.Track(fixed(Vec2{-10, 0}), fixed(Vec2{10, 0}))
	b.failAlloc = 1
	dst := newTarget("dst", 640, 360)

	_, err := s.Render(nil, dst)
	if !errors.Is(err, ErrFrameSkipped) {
		t.Errorf("err = %v, want ErrFrameSkipped", err)
	}
	if dst.writes != 0 {
		t.Errorf("dst writes = %d, want 0", dst.writes)
	}
	if !strings.Contains(buf.String(), "frame skipped") {
		t.Errorf("skipped frame not logged:\n%s", buf.String())
	}

	if _, err := s.Render(nil, nil); !errors.Is(err, ErrFrameSkipped) {
		t.Errorf("nil dst: err = %v, want ErrFrameSkipped", err)
	}
}

func TestSessionDebugStats(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Debug = true
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := NewSession(&fakeBackend{}, cfg, WithLogger(logger))
	s.Track(fixed(Vec2{-10, 0}), fixed(Vec2{10, 0}))

	if _, err := s.Render(nil, newTarget("dst", 640, 360)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, key := range []string{"passes=", "views=2", "session="} {
		if !strings.Contains(out, key) {
			t.Errorf("debug output missing %q:\n%s", key, out)
		}
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a, _, _ := newTestSession(DefaultConfig())
	b, _, _ := newTestSession(DefaultConfig())
	if a.ID == b.ID {
		t.Error("sessions share an ID")
	}
	if a.Compositor() == b.Compositor() {
		t.Error("sessions share a compositor")
	}
	a.Compositor().cellsUniforms["Soft"] = float32(1)
	if _, ok := b.Compositor().cellsUniforms["Soft"]; ok {
		t.Error("sessions share uniform maps")
	}
}
