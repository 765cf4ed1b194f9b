package armature

import (
	"encoding/json"
	"fmt"
)

// editStep is a single action in an edit script.
type editStep struct {
	Action    string  `json:"action"`
	Label     string  `json:"label,omitempty"`
	Animation int     `json:"animation,omitempty"`
	Part      int     `json:"part,omitempty"`
	Frame     int     `json:"frame,omitempty"`
	Angle     float64 `json:"angle,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Visible   bool    `json:"visible,omitempty"`
	Mode      Mode    `json:"mode,omitempty"`
	AutoKey   bool    `json:"autoKey,omitempty"`
	Execute   *bool   `json:"execute,omitempty"`
}

// editScript is the top-level JSON structure for an edit script.
type editScript struct {
	Steps []editStep `json:"steps"`
}

// EditScript replays a recorded sequence of canvas gestures and history
// actions through a Stack, for automated testing of editing sessions.
//
//	{"steps": [
//	    {"action": "rotate", "part": 1, "frame": 2, "angle": 45, "autoKey": true},
//	    {"action": "rotate", "part": 1, "frame": 2, "angle": 50},
//	    {"action": "break"},
//	    {"action": "undo"}
//	]}
//
// Gesture steps act on the animation given by "animation", or the current one.
type EditScript struct {
	steps  []editStep
	cursor int
}

// LoadEditScript parses a JSON edit script.
func LoadEditScript(jsonData []byte) (*EditScript, error) {
	var script editScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse edit script: no steps")
	}
	return &EditScript{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (r *EditScript) Len() int {
	return len(r.steps)
}

// Done reports whether every step has been run.
func (r *EditScript) Done() bool {
	return r.cursor >= len(r.steps)
}

// Run executes the remaining steps against stack. It stops at the first step
// that refers to an unknown part or animation, or names an unknown action, and
// returns an error naming the step index; later steps are left for a further
// Run.
func (r *EditScript) Run(stack *Stack) error {
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		if err := r.step(stack, st); err != nil {
			return fmt.Errorf("edit script step %d (%s): %w", r.cursor, st.Action, err)
		}
		r.cursor++
	}
	return nil
}

var editActions = map[string]bool{
	"undo": true, "redo": true, "break": true, "clean": true, "begin": true, "end": true, "seek": true,
	"insert": true, "delete": true, "frames": true,
	"key": true, "rotate": true, "move": true, "visible": true, "pivot": true,
}

func (r *EditScript) step(stack *Stack, st editStep) error {
	if !editActions[st.Action] {
		return fmt.Errorf("unknown action")
	}
	p := stack.Project()

	switch st.Action {
	case "undo":
		stack.Undo()
		return nil
	case "redo":
		stack.Redo()
		return nil
	case "break":
		stack.BreakChain()
		return nil
	case "clean":
		stack.SetClean()
		return nil
	case "begin":
		stack.Begin(st.Label)
		return nil
	case "end":
		stack.End(st.Execute == nil || *st.Execute)
		return nil
	case "seek":
		p.SetFrame(st.Frame)
		return nil
	}

	anim := p.Current()
	if st.Animation != 0 {
		anim = p.Animation(st.Animation)
		if anim == nil {
			return fmt.Errorf("unknown animation %d", st.Animation)
		}
	}

	switch st.Action {
	case "insert":
		if anim == nil {
			return fmt.Errorf("no animation")
		}
		stack.Push(NewInsertFrame(anim, st.Frame), true)
		return nil
	case "delete":
		if anim == nil {
			return fmt.Errorf("no animation")
		}
		stack.Push(NewDeleteFrame(anim, st.Frame), true)
		return nil
	case "frames":
		if anim == nil {
			return fmt.Errorf("no animation")
		}
		stack.Push(NewSetFrames(anim, st.Frame), true)
		return nil
	}

	part := p.Part(st.Part)
	if part == nil || part == p.Root() {
		return fmt.Errorf("unknown part %d", st.Part)
	}

	switch st.Action {
	case "key":
		if anim == nil {
			return fmt.Errorf("no animation")
		}
		KeyPart(stack, anim, part, st.Frame, st.Mode)
	case "rotate":
		if !RotatePart(stack, anim, part, st.Frame, st.Angle, st.AutoKey) {
			return fmt.Errorf("no animation")
		}
	case "move":
		MovePart(stack, anim, part, st.Frame, Vec2{st.X, st.Y}, st.AutoKey)
	case "visible":
		SetPartVisible(stack, anim, part, st.Frame, st.Visible, st.AutoKey)
	case "pivot":
		SetPivot(stack, part, Vec2{st.X, st.Y})
	}
	return nil
}
