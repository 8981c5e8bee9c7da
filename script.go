package halo

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a playback script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

// scriptFile is the top-level JSON structure for a script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences engine actions across frames for scripted demos and
// automated visual checks: lifecycle toggles, visibility, theme switches,
// snapshots and frame waits. Attach to an engine via Engine.SetScript; the
// engine then services it once per Step, one action per frame.
//
// Supported actions: "start", "stop", "show", "hide", "theme" (with a preset
// label), "snapshot" (with a file label) and "wait" (with a frame count).
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script and validates every step, so a typo in an
// action or theme label fails at load time instead of silently doing nothing
// mid-playback.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "start", "stop", "show", "hide", "snapshot", "wait":
		case "theme":
			if _, ok := PresetTheme(st.Label); !ok {
				return nil, fmt.Errorf("parse script: step %d: unknown theme %q", i, st.Label)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *Script) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Engine.Step.
func (r *Script) step(e *Engine) {
	if r.done {
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
	case "start":
		e.Start()
	case "stop":
		e.Stop()
	case "show":
		e.SetVisible(true)
	case "hide":
		e.SetVisible(false)
	case "theme":
		theme, _ := PresetTheme(st.Label)
		e.SetTheme(theme)
	case "snapshot":
		e.Snapshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
