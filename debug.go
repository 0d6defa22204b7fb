package splitview

import (
	"time"

	"github.com/charmbracelet/log"
)

// frameStats holds per-frame pass timings and counts.
// Timings are only collected when the compositor has timing enabled.
type frameStats struct {
	planTime    time.Duration
	maskTime    time.Duration
	captureTime time.Duration
	cellsTime   time.Duration
	lineTime    time.Duration
	fxaaTime    time.Duration
	blendTime   time.Duration
	views       int
	passes      int
}

func (s frameStats) total() time.Duration {
	return s.planTime + s.maskTime + s.captureTime + s.cellsTime + s.lineTime + s.fxaaTime + s.blendTime
}

// SetTiming enables or disables per-pass timing collection.
func (c *Compositor) SetTiming(enabled bool) {
	c.timing = enabled
}

func (c *Compositor) beginStats() {
	c.stats = frameStats{}
	if c.timing {
		c.mark = time.Now()
	}
}

// lap stores the time since the previous lap into d.
func (c *Compositor) lap(d *time.Duration) {
	if !c.timing {
		return
	}
	now := time.Now()
	*d = now.Sub(c.mark)
	c.mark = now
}

// logStats writes one debug line with the frame's pass timings.
func logStats(l *log.Logger, s frameStats) {
	l.Debug("frame",
		"plan", s.planTime,
		"mask", s.maskTime,
		"capture", s.captureTime,
		"cells", s.cellsTime,
		"line", s.lineTime,
		"fxaa", s.fxaaTime,
		"blend", s.blendTime,
		"total", s.total(),
		"views", s.views,
		"passes", s.passes,
	)
}
