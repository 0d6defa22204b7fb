package splitview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Tracker supplies the world position of one player each frame.
type Tracker interface {
	Position() Vec2
}

// TrackerFunc adapts a function to the Tracker interface.
type TrackerFunc func() Vec2

// Position calls f.
func (f TrackerFunc) Position() Vec2 { return f() }

// Frame is everything the compositor needs to draw one frame.
type Frame struct {
	Screen ScreenProperties
	Layout Layout
	Merge  MergeState
	// World holds the raw player positions used this frame.
	World [MaxViewpoints]Vec2
	// Cameras holds the placement of each viewpoint; only the first
	// ActiveViews entries are rendered.
	Cameras     [MaxViewpoints]Camera
	ActiveViews int
	// PlayerCount is the clamped number of players in the layout.
	PlayerCount int
	LineColor   Color
	FXAA        bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger warnings and debug stats are written to.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithOrigin sets the position used for slot 0 when no players are tracked.
func WithOrigin(origin Vec2) Option {
	return func(s *Session) { s.Origin = origin }
}

// Session drives the split-screen pipeline for one output. Each session owns
// its screen state, compositor and parameter maps; nothing mutable is shared
// between sessions.
type Session struct {
	// ID identifies the session in log output.
	ID uuid.UUID
	// Config is read at the start of every frame.
	Config Config
	// Origin stands in for player 0 when no players are tracked.
	Origin Vec2
	// ScreenshotDir is where queued screenshots are written. Empty means
	// DefaultScreenshotDir.
	ScreenshotDir string

	screen     ScreenProperties
	compositor *Compositor
	trackers   []Tracker
	logger     *log.Logger

	// lastClamp remembers the configured count that was last warned about
	// so a persistent misconfiguration is reported once.
	lastClamp int
	frame     Frame
	shots     []string
}

// NewSession creates a session rendering through backend.
func NewSession(backend Backend, cfg Config, opts ...Option) *Session {
	s := &Session{
		ID:         uuid.New(),
		Config:     cfg,
		compositor: NewCompositor(backend),
		lastClamp:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.With("session", s.ID.String()[:8])
	return s
}

// Track replaces the tracked players. Slot order is argument order.
func (s *Session) Track(trackers ...Tracker) {
	s.trackers = append(s.trackers[:0], trackers...)
}

// Trackers returns the tracked players. The returned slice MUST NOT be mutated.
func (s *Session) Trackers() []Tracker {
	return s.trackers
}

// Screen returns the current screen properties.
func (s *Session) Screen() ScreenProperties {
	return s.screen
}

// Compositor returns the session's compositor.
func (s *Session) Compositor() *Compositor {
	return s.compositor
}

// LastFrame returns the most recently planned frame.
func (s *Session) LastFrame() Frame {
	return s.frame
}

// Plan applies resolution and ortho size changes and computes the layout,
// merge state and camera placements for a frame of the given size.
func (s *Session) Plan(width, height int) Frame {
	s.screen.Resize(width, height)
	s.screen.SetOrthoSize(s.Config.OrthoSize)

	count := s.playerCount()
	var world [MaxViewpoints]Vec2
	world[0] = s.Origin
	for i := 0; i < len(s.trackers) && i < MaxViewpoints; i++ {
		world[i] = s.trackers[i].Position()
	}

	f := Frame{
		Screen:      s.screen,
		World:       world,
		PlayerCount: count,
		LineColor:   s.Config.LineColor,
		FXAA:        s.Config.FXAA,
	}
	if count <= 1 {
		f.Layout = NormalizeLayout(world[:1], s.screen.AspectRatio)
		f.Merge = SingleView(world[0])
	} else {
		f.Layout = NormalizeLayout(world[:count], s.screen.AspectRatio)
		f.Merge = ComputeMerge(f.Layout, world, s.screen.OrthoSize, s.Config.Merging)
	}
	f.ActiveViews = f.Merge.ActiveViews

	placements := PlaceViewpoints(f.Layout, world, f.Merge, s.screen, s.Config.Ease())
	viewport := Rect{Width: float64(s.screen.Width), Height: float64(s.screen.Height)}
	for i := range placements {
		f.Cameras[i] = NewCamera(placements[i], s.screen.OrthoSize, viewport)
	}
	s.frame = f
	return f
}

// Render runs one complete frame: plan, then composite into dst with src as
// an optional overlay. The resolution is taken from dst. On error dst is left
// untouched and the next call retries.
func (s *Session) Render(src, dst Target) (Frame, error) {
	if dst == nil {
		return Frame{}, fmt.Errorf("%w: nil destination", ErrFrameSkipped)
	}
	var start time.Time
	if s.Config.Debug {
		start = time.Now()
	}
	w, h := dst.Size()
	f := s.Plan(w, h)
	planTime := time.Duration(0)
	if s.Config.Debug {
		planTime = time.Since(start)
	}

	s.compositor.SetTiming(s.Config.Debug)
	if err := s.compositor.Render(&f, src, dst); err != nil {
		s.logger.Error("frame skipped", "err", err)
		return f, err
	}
	if s.Config.Debug {
		stats := s.compositor.stats
		stats.planTime = planTime
		logStats(s.logger, stats)
	}
	s.flushScreenshots(dst)
	return f, nil
}

// Close releases the compositor's render targets.
func (s *Session) Close() {
	s.compositor.Release()
}

// playerCount clamps the configured player count to the tracked players and
// to MaxViewpoints, warning once per distinct misconfiguration.
func (s *Session) playerCount() int {
	configured := s.Config.PlayerCount
	count := max(configured, 0)
	if count > len(s.trackers) {
		count = len(s.trackers)
		if s.lastClamp != configured {
			s.logger.Warn("player count is higher than the number of tracked players; clamping",
				"configured", configured, "tracked", len(s.trackers), "using", count)
		}
	}
	if count > MaxViewpoints {
		count = MaxViewpoints
		if s.lastClamp != configured {
			s.logger.Warn("more players than supported viewpoints; clamping",
				"configured", configured, "max", MaxViewpoints)
		}
	}
	if count != configured {
		s.lastClamp = configured
	} else {
		s.lastClamp = -1
	}
	return count
}
