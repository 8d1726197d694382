// Package organize sorts loose files into a project layout by extension.
package organize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"dslab/internal/domain"
)

// Rules maps a file extension (without the dot, lowercase) to a
// project-relative destination directory.
type Rules map[string]string

// DefaultRules returns the built-in extension mapping for the default
// project layout.
func DefaultRules() Rules {
	return Rules{
		"csv":     "data/raw",
		"tsv":     "data/raw",
		"parquet": "data/raw",
		"json":    "data/raw",
		"jsonl":   "data/raw",
		"xlsx":    "data/external",
		"ipynb":   "notebooks",
		"py":      "src",
		"go":      "src",
		"sql":     "src",
		"pkl":     "models",
		"onnx":    "models",
		"png":     "reports/figures",
		"svg":     "reports/figures",
		"pdf":     "references",
		"md":      "references",
	}
}

// rulesDoc is the yaml envelope for a rules file.
type rulesDoc struct {
	APIVersion string            `yaml:"apiVersion"`
	Kind       string            `yaml:"kind"`
	Rules      map[string]string `yaml:"rules"`
}

// KindSortRules is the manifest kind for sorting rules.
const KindSortRules = "SortRules"

// supportedAPIVersion matches the scaffold manifest version.
const supportedAPIVersion = "dslab/v1"

// LoadRules reads an extension-to-directory mapping from a yaml file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading user-specified rules
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var doc rulesDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.APIVersion != supportedAPIVersion {
		return nil, domain.ErrValidation("%s: unsupported apiVersion %q (expected %q)", path, doc.APIVersion, supportedAPIVersion)
	}
	if doc.Kind != KindSortRules {
		return nil, domain.ErrValidation("%s: unexpected kind %q (expected %q)", path, doc.Kind, KindSortRules)
	}
	rules := Rules{}
	for ext, dir := range doc.Rules {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" {
			return nil, domain.ErrValidation("%s: empty extension in rules", path)
		}
		if filepath.IsAbs(dir) {
			return nil, domain.ErrValidation("%s: destination %q must be relative", path, dir)
		}
		rules[ext] = dir
	}
	return rules, nil
}

// Action is a single planned file move.
type Action struct {
	Source string // absolute path of the file to move
	Dest   string // absolute destination path
}

// Plan lists the moves Scan decided on, plus the files it left alone.
type Plan struct {
	BaseDir string
	Actions []Action
	Skipped []string // file names with no matching rule
}

// HasChanges returns true when the plan moves at least one file.
func (p *Plan) HasChanges() bool { return len(p.Actions) > 0 }

// Scan classifies the regular files directly under srcDir by extension and
// returns a move plan targeting baseDir. Dotfiles, directories, and files
// with no matching rule are skipped.
func Scan(srcDir, baseDir string, rules Rules) (*Plan, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", srcDir, err)
	}

	plan := &Plan{BaseDir: baseDir}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		dir, ok := rules[ext]
		if !ok {
			plan.Skipped = append(plan.Skipped, name)
			continue
		}
		src, err := filepath.Abs(filepath.Join(srcDir, name))
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", name, err)
		}
		dest, err := filepath.Abs(filepath.Join(baseDir, dir, name))
		if err != nil {
			return nil, fmt.Errorf("resolve destination for %s: %w", name, err)
		}
		if src == dest {
			continue // already where it belongs
		}
		plan.Actions = append(plan.Actions, Action{Source: src, Dest: dest})
	}

	sort.Slice(plan.Actions, func(i, j int) bool { return plan.Actions[i].Source < plan.Actions[j].Source })
	sort.Strings(plan.Skipped)
	return plan, nil
}

// Options controls how Execute transfers files.
type Options struct {
	Copy bool // copy instead of move
}

// EntryError records a failure for a single plan entry.
type EntryError struct {
	Action Action
	Err    error
}

// Result summarizes an Execute run.
type Result struct {
	Transferred []Action
	Errors      []EntryError
}

// Execute performs the plan's moves (or copies). A collision with an
// existing destination file fails that entry only; the rest still run.
func Execute(plan *Plan, opts Options) *Result {
	result := &Result{}
	for _, a := range plan.Actions {
		if err := transfer(a, opts.Copy); err != nil {
			result.Errors = append(result.Errors, EntryError{Action: a, Err: err})
			continue
		}
		result.Transferred = append(result.Transferred, a)
	}
	return result
}

func transfer(a Action, copyOnly bool) error {
	if _, err := os.Stat(a.Dest); err == nil {
		return domain.ErrConflict("destination %s already exists", a.Dest)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", a.Dest, err)
	}
	if err := os.MkdirAll(filepath.Dir(a.Dest), 0o750); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	if copyOnly {
		return copyFile(a.Source, a.Dest)
	}
	if err := os.Rename(a.Source, a.Dest); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy then remove.
	if err := copyFile(a.Source, a.Dest); err != nil {
		return err
	}
	if err := os.Remove(a.Source); err != nil {
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) //nolint:gosec // paths come from a scanned plan
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close() //nolint:errcheck

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640) //nolint:gosec
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("copy to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dest, err)
	}
	return nil
}
