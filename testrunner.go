package draggable

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TargetResolver finds the element under a viewport point. Document
// implements it.
type TargetResolver interface {
	ElementAt(x, y float64) Element
}

// TestRunner sequences injected pointer events across ticks for scripted
// gesture testing and replay. Targets are resolved from coordinates, the way
// a browser resolves the element under the pointer.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// OnMark is called for "mark" steps with the step's label.
	OnMark func(label string)
}

// LoadTestScript parses a JSON test script. Supported actions are press,
// move, release, click, drag, touchstart, touchmove, touchend, touchcancel,
// scroll, wait and mark.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "press", "move", "release", "click", "drag",
		"touchstart", "touchmove", "touchend", "touchcancel",
		"scroll", "wait", "mark":
		return true
	}
	return false
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step advances the runner by one tick, queueing the next step's events on
// src. It does nothing while src still has undelivered events.
func (r *TestRunner) Step(src *InjectSource, targets TargetResolver) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if src.Pending() > 0 {
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
	case "press":
		src.InjectPress(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "move":
		src.InjectMove(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "release":
		src.InjectRelease(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "click":
		src.InjectClick(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 3 {
			frames = 3
		}
		r.injectDrag(src, targets, st, frames-2)
	case "touchstart":
		src.InjectTouchStart(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "touchmove":
		src.InjectTouchMove(targets.ElementAt(st.X, st.Y), st.X, st.Y)
	case "touchend":
		src.InjectTouchEnd(targets.ElementAt(st.X, st.Y))
	case "touchcancel":
		src.InjectTouchCancel(targets.ElementAt(st.X, st.Y))
	case "scroll":
		src.SetScroll(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mark":
		if r.OnMark != nil {
			r.OnMark(st.Label)
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && src.Pending() == 0 {
		r.done = true
	}
}

// injectDrag queues a press, moves and a release with each event targeted at
// the element under its own coordinates.
func (r *TestRunner) injectDrag(src *InjectSource, targets TargetResolver, st testStep, moves int) {
	src.InjectPress(targets.ElementAt(st.FromX, st.FromY), st.FromX, st.FromY)
	for i := 1; i <= moves; i++ {
		t := float64(i) / float64(moves)
		x := st.FromX + (st.ToX-st.FromX)*t
		y := st.FromY + (st.ToY-st.FromY)*t
		src.InjectMove(targets.ElementAt(x, y), x, y)
	}
	src.InjectRelease(targets.ElementAt(st.ToX, st.ToY), st.ToX, st.ToY)
}

// Run drives the whole script headlessly, delivering each tick's events
// before advancing. It returns the number of ticks taken.
func (r *TestRunner) Run(src *InjectSource, targets TargetResolver) int {
	ticks := 0
	for !r.done {
		r.Step(src, targets)
		src.Flush()
		ticks++
	}
	return ticks
}
