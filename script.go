package splitview

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a movement script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Player int     `json:"player,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ease   string  `json:"ease,omitempty"`
}

// script is the top-level JSON structure for a movement script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences player moves and screenshots across frames for
// automated visual checks of splitting and merging. Call Step once per
// game update.
//
//	{"steps": [
//	  {"action": "teleport", "player": 1, "x": 1, "y": 0},
//	  {"action": "move", "player": 1, "x": 20, "y": 0, "frames": 120},
//	  {"action": "screenshot", "label": "split"}
//	]}
//
// Actions: "move" tweens a player over frames, "teleport" sets a position,
// "wait" idles for frames and "screenshot" queues a capture.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	move      *MoveTween
	done      bool
}

var scriptActions = map[string]bool{"move": true, "teleport": true, "wait": true, "screenshot": true}

// LoadScript parses a JSON movement script.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if st.Player < 0 || st.Player >= MaxViewpoints {
			return nil, fmt.Errorf("parse script: step %d: player %d out of range", i, st.Player)
		}
		if _, err := EaseByName(st.Ease); err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame against s. Moves address the
// session's trackers by slot and require them to implement Mover.
func (r *ScriptRunner) Step(s *Session) error {
	if r.done {
		return nil
	}
	// Let the running move finish before advancing.
	if r.move != nil {
		r.move.Update(1)
		if !r.move.Done {
			return nil
		}
		r.move = nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "teleport":
		var m Mover
		if m, err = r.mover(s, st.Player); err == nil {
			m.SetPosition(Vec2{st.X, st.Y})
		}
	case "move":
		var m Mover
		if m, err = r.mover(s, st.Player); err == nil {
			fn, _ := EaseByName(st.Ease)
			r.move = TweenMove(m, Vec2{st.X, st.Y}, float32(max(st.Frames, 1)), fn)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.move == nil {
		r.done = true
	}
	return err
}

func (r *ScriptRunner) mover(s *Session, slot int) (Mover, error) {
	if slot >= len(s.trackers) {
		return nil, fmt.Errorf("script step %d: no player in slot %d", r.cursor-1, slot)
	}
	m, ok := s.trackers[slot].(Mover)
	if !ok {
		return nil, fmt.Errorf("script step %d: player %d cannot be moved", r.cursor-1, slot)
	}
	return m, nil
}
