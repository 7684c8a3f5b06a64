package wicker

import (
	"errors"
	"fmt"

	"github.com/go-json-experiment/json"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner sequences injected input and screenshot requests across
// frames for automated UI testing. Attach it with Manager.SetScript.
//
//	{"steps": [
//	  {"action": "click", "x": 120, "y": 40},
//	  {"action": "wait", "frames": 10},
//	  {"action": "drag", "fromX": 10, "fromY": 5, "toX": 200, "toY": 80, "frames": 20},
//	  {"action": "screenshot", "label": "after-drag"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var errEmptyScript = errors.New("no steps")

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: %w", errEmptyScript)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "click", "rightclick", "drag", "wheel", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScript attaches r. Its step runs at the start of every Update.
func (m *Manager) SetScript(r *ScriptRunner) { m.script = r }

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool { return r.done }

// step advances the runner by one frame.
func (r *ScriptRunner) step(m *Manager) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(m.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		m.RequestScreenshot(st.Label)
	case "click":
		m.InjectClick(st.X, st.Y)
	case "rightclick":
		m.InjectRightClick(st.X, st.Y)
	case "wheel":
		m.InjectWheel(st.X, st.Y, st.Delta)
	case "drag":
		m.InjectDrag(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(m.injectQueue) == 0 {
		r.done = true
	}
}

// RequestScreenshot queues a labeled screenshot. Hosts drain the queue with
// ScreenshotRequests after drawing.
func (m *Manager) RequestScreenshot(label string) {
	m.screenshots = append(m.screenshots, label)
}

// ScreenshotRequests returns and clears the queued screenshot labels.
func (m *Manager) ScreenshotRequests() []string {
	out := m.screenshots
	m.screenshots = nil
	return out
}
