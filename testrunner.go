package grove

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string     `json:"action"`
	Label  string     `json:"label,omitempty"`
	Key    ebiten.Key `json:"key,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	FromX  float64    `json:"fromX,omitempty"`
	FromY  float64    `json:"fromY,omitempty"`
	ToX    float64    `json:"toX,omitempty"`
	ToY    float64    `json:"toY,omitempty"`
	Frames int        `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input, screenshots and a final quit across
// frames for automated runs. Attach to an Engine via SetTestRunner.
//
// Actions: "key" (key name, e.g. "Space"), "click" (x, y), "move" (x, y),
// "drag" (fromX, fromY, toX, toY, frames), "wait" (frames), "screenshot"
// (label) and "quit".
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the engine. The runner advances
// once per Update, before input is dispatched.
func (e *Engine) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
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
		e.Screenshot(st.Label)
	case "key":
		e.InjectKey(st.Key)
	case "click":
		e.InjectClick(st.X, st.Y)
	case "move":
		e.InjectMove(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "quit":
		e.Quit()
	default:
		e.log.Warn("unknown test step", zap.String("action", st.Action), zap.Int("step", r.cursor-1))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
