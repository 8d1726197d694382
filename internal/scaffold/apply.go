package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// ActionResult records the outcome of a single applied action.
type ActionResult struct {
	Action Action
	Err    error
}

// ApplyResult summarizes an Apply run.
type ApplyResult struct {
	Results []ActionResult
}

// Created returns the number of successfully created entries.
func (r *ApplyResult) Created() int {
	n := 0
	for _, res := range r.Results {
		if res.Action.Operation == OpCreate && res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of actions that errored.
func (r *ApplyResult) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// Apply executes the plan's create actions. Skips are not touched and
// existing files are never overwritten; a failed action is recorded and the
// remaining actions still run.
func Apply(plan *Plan) *ApplyResult {
	result := &ApplyResult{}
	for _, a := range plan.Actions {
		if a.Operation != OpCreate {
			continue
		}
		result.Results = append(result.Results, ActionResult{Action: a, Err: applyAction(plan.BaseDir, a)})
	}
	return result
}

func applyAction(baseDir string, a Action) error {
	full := filepath.Join(baseDir, a.Path)
	switch a.Kind {
	case KindDir:
		if err := os.MkdirAll(full, 0o750); err != nil {
			return fmt.Errorf("create dir %s: %w", a.Path, err)
		}
		return nil
	case KindFile:
		if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
			return fmt.Errorf("create parent of %s: %w", a.Path, err)
		}
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec // path derives from a validated layout
		if err != nil {
			return fmt.Errorf("create file %s: %w", a.Path, err)
		}
		if _, err := f.WriteString(a.content); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", a.Path, err)
		}
		return nil
	default:
		return fmt.Errorf("unknown entry kind %d", a.Kind)
	}
}
