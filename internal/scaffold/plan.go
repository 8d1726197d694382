package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Operation describes what Apply will do for a single path.
type Operation int

const (
	// OpCreate means the path is missing and will be created.
	OpCreate Operation = iota
	// OpSkip means the path already exists with the right kind.
	OpSkip
)

// String returns a human-readable operation name.
func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpSkip:
		return "skip"
	default:
		return fmt.Sprintf("operation(%d)", int(o))
	}
}

// EntryKind distinguishes directories from placeholder files.
type EntryKind int

const (
	// KindDir is a directory entry.
	KindDir EntryKind = iota
	// KindFile is a placeholder file entry.
	KindFile
)

// String returns a human-readable kind name.
func (k EntryKind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Action is a single planned change to the filesystem.
type Action struct {
	Operation Operation
	Kind      EntryKind
	Path      string // project-relative
	content   string // file content, carried from the layout to Apply
}

// PlanError represents a conflict found during planning, e.g. a layout file
// path that exists on disk as a directory.
type PlanError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Plan is the ordered list of actions needed to realize a layout under BaseDir.
type Plan struct {
	BaseDir string
	Actions []Action
	Errors  []PlanError
}

// Summary holds counts of planned operations.
type Summary struct {
	Creates int `json:"creates"`
	Skips   int `json:"skips"`
	Errors  int `json:"errors"`
}

// Summary returns counts of creates, skips, and conflicts.
func (p *Plan) Summary() Summary {
	var s Summary
	for _, a := range p.Actions {
		switch a.Operation {
		case OpCreate:
			s.Creates++
		case OpSkip:
			s.Skips++
		}
	}
	s.Errors = len(p.Errors)
	return s
}

// HasChanges returns true if the plan creates anything or found conflicts.
func (p *Plan) HasChanges() bool {
	return p.Summary().Creates > 0 || len(p.Errors) > 0
}

// BuildPlan diffs the layout against the filesystem under baseDir.
// Directories come before files, each group sorted by path.
func BuildPlan(layout *Layout, baseDir string) (*Plan, error) {
	if errs := Validate(layout); len(errs) > 0 {
		return nil, errs[0]
	}

	plan := &Plan{BaseDir: baseDir}

	dirs := make([]string, len(layout.Dirs))
	copy(dirs, layout.Dirs)
	sort.Strings(dirs)
	for _, d := range dirs {
		full := filepath.Join(baseDir, d)
		info, err := os.Stat(full)
		switch {
		case os.IsNotExist(err):
			plan.Actions = append(plan.Actions, Action{Operation: OpCreate, Kind: KindDir, Path: d})
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", full, err)
		case !info.IsDir():
			plan.Errors = append(plan.Errors, PlanError{
				Path:    d,
				Message: "exists as a file, layout declares a directory",
			})
		default:
			plan.Actions = append(plan.Actions, Action{Operation: OpSkip, Kind: KindDir, Path: d})
		}
	}

	files := make([]FileSpec, len(layout.Files))
	copy(files, layout.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for _, f := range files {
		full := filepath.Join(baseDir, f.Path)
		info, err := os.Stat(full)
		switch {
		case os.IsNotExist(err):
			plan.Actions = append(plan.Actions, Action{
				Operation: OpCreate, Kind: KindFile, Path: f.Path, content: f.Content,
			})
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", full, err)
		case info.IsDir():
			plan.Errors = append(plan.Errors, PlanError{
				Path:    f.Path,
				Message: "exists as a directory, layout declares a file",
			})
		default:
			// Existing files are never overwritten.
			plan.Actions = append(plan.Actions, Action{Operation: OpSkip, Kind: KindFile, Path: f.Path})
		}
	}

	return plan, nil
}
