package bloom

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

// testScript is the top-level YAML structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

var knownActions = map[string]bool{
	"wait":       true,
	"screenshot": true,
	"click":      true,
	"confirm":    true,
	"resize":     true,
}

// TestRunner sequences injected input, confirms, resizes and screenshots
// across frames for automated runs. Attach to a Scene via SetTestRunner.
//
// A script looks like:
//
//	steps:
//	  - {action: wait, frames: 300}
//	  - {action: screenshot, label: idle}
//	  - {action: confirm}
//	  - {action: resize, width: 375, height: 800}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML test script and returns a TestRunner ready
// to be attached to a Scene via SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "resize" && (st.Width <= 0 || st.Height <= 0) {
			return nil, fmt.Errorf("parse test script: step %d: resize needs a positive size", i)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Step each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
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
	s.logger.Debug("test step", "index", r.cursor-1, "action", st.Action)

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "confirm":
		s.InjectConfirm()
	case "resize":
		if s.OnResize != nil {
			s.OnResize(st.Width, st.Height)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
