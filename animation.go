package splitview

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Mover is a Tracker whose position can be set, such as a scripted or
// AI-driven player.
type Mover interface {
	Tracker
	SetPosition(Vec2)
}

// MoveTween animates a Mover to a target position. Call Update(dt) each
// frame until Done.
//
// There is no global animation manager; users call Update themselves.
type MoveTween struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	target Mover
	Done   bool
}

// TweenMove creates a MoveTween that moves m from its current position to
// to over duration using fn. A nil fn is linear.
func TweenMove(m Mover, to Vec2, duration float32, fn ease.TweenFunc) *MoveTween {
	if fn == nil {
		fn = ease.Linear
	}
	from := m.Position()
	return &MoveTween{
		tweenX: gween.New(float32(from.X), float32(to.X), duration, fn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), duration, fn),
		target: m,
	}
}

// Update advances the tween by dt and writes the new position to the mover.
func (t *MoveTween) Update(dt float32) {
	if t.Done {
		return
	}
	x, doneX := t.tweenX.Update(dt)
	y, doneY := t.tweenY.Update(dt)
	t.target.SetPosition(Vec2{float64(x), float64(y)})
	t.Done = doneX && doneY
}
