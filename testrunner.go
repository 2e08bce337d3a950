package gooey

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Target string  `json:"target,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var testActions = map[string]bool{
	"toggle":     true,
	"open":       true,
	"close":      true,
	"click":      true,
	"wait":       true,
	"screenshot": true,
}

// TestRunner sequences toggles, injected clicks and screenshots across frames
// for automated visual testing. Attach to an Effect via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Effect via SetTestRunner.
//
//	{"steps": [
//		{"action": "screenshot", "label": "closed"},
//		{"action": "click", "target": "toggle"},
//		{"action": "wait", "frames": 120},
//		{"action": "screenshot", "label": "open"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "click" && st.Target != "" && st.Target != "toggle" {
			return nil, fmt.Errorf("parse test script: step %d: unknown click target %q", i, st.Target)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the effect. The runner's step method
// is called from Effect.Update before input is processed each frame.
func (e *Effect) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// ScriptDone reports whether an attached test script has finished. It is
// false when no script is attached.
func (e *Effect) ScriptDone() bool {
	return e.testRunner != nil && e.testRunner.Done()
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Effect.Update.
func (r *TestRunner) step(e *Effect) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
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
	case "toggle":
		e.Toggle()
	case "open":
		e.SetActive(true)
	case "close":
		e.SetActive(false)
	case "click":
		x, y := st.X, st.Y
		if st.Target == "toggle" {
			b := e.ToggleButton()
			x, y = b.X, b.Y
		}
		e.InjectClick(x, y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}
