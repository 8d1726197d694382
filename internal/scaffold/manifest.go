package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dslab/internal/domain"
)

// SupportedAPIVersion is the manifest apiVersion this build understands.
const SupportedAPIVersion = "dslab/v1"

// KindProjectLayout is the manifest kind for project layouts.
const KindProjectLayout = "ProjectLayout"

// layoutDoc is the yaml envelope for a project layout manifest.
type layoutDoc struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Name       string     `yaml:"name"`
	ProjectID  string     `yaml:"project_id,omitempty"`
	Dirs       []string   `yaml:"dirs"`
	Files      []FileSpec `yaml:"files,omitempty"`
}

// LoadManifest reads and validates a project layout manifest. Unknown yaml
// fields are rejected. A manifest without a project_id gets a generated one.
func LoadManifest(path string) (*Layout, error) {
	data, err := os.ReadFile(path) //nolint:gosec // intentional: reading user-specified manifests
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var doc layoutDoc
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if doc.APIVersion != SupportedAPIVersion {
		return nil, domain.ErrValidation("%s: unsupported apiVersion %q (expected %q)",
			path, doc.APIVersion, SupportedAPIVersion)
	}
	if doc.Kind != KindProjectLayout {
		return nil, domain.ErrValidation("%s: unexpected kind %q (expected %q)",
			path, doc.Kind, KindProjectLayout)
	}

	layout := &Layout{
		Name:      doc.Name,
		ProjectID: doc.ProjectID,
		Dirs:      doc.Dirs,
		Files:     doc.Files,
	}
	if layout.ProjectID == "" {
		layout.ProjectID = domain.NewID()
	}
	if errs := Validate(layout); len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", path, errs[0])
	}
	return layout, nil
}

// Validate checks a layout for consistency: a name, clean relative paths,
// and no duplicates. It returns all problems found, not just the first.
func Validate(layout *Layout) []error {
	var errs []error
	if strings.TrimSpace(layout.Name) == "" {
		errs = append(errs, domain.ErrValidation("layout name is required"))
	}

	seen := map[string]string{} // path -> "dir" | "file"
	checkPath := func(p, kind string) {
		switch {
		case p == "":
			errs = append(errs, domain.ErrValidation("%s path must not be empty", kind))
			return
		case filepath.IsAbs(p):
			errs = append(errs, domain.ErrValidation("%s path %q must be relative", kind, p))
			return
		}
		clean := filepath.Clean(p)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			errs = append(errs, domain.ErrValidation("%s path %q escapes the project directory", kind, p))
			return
		}
		if prev, ok := seen[clean]; ok {
			if prev == kind {
				errs = append(errs, domain.ErrValidation("duplicate %s path %q", kind, p))
			} else {
				errs = append(errs, domain.ErrValidation("path %q declared as both %s and %s", p, prev, kind))
			}
			return
		}
		seen[clean] = kind
	}

	for _, d := range layout.Dirs {
		checkPath(d, "dir")
	}
	for _, f := range layout.Files {
		checkPath(f.Path, "file")
	}

	// A file must not be nested under a path declared as a file.
	for _, f := range layout.Files {
		parent := filepath.Dir(filepath.Clean(f.Path))
		for parent != "." && parent != "/" {
			if seen[parent] == "file" {
				errs = append(errs, domain.ErrValidation("file path %q is nested under file %q", f.Path, parent))
				break
			}
			parent = filepath.Dir(parent)
		}
	}

	return errs
}
