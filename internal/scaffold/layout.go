// Package scaffold plans and applies data-science project directory layouts
// from declarative manifests.
package scaffold

import (
	"fmt"

	"dslab/internal/domain"
)

// FileSpec describes a placeholder file created during scaffolding.
type FileSpec struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content,omitempty"`
}

// Layout is the desired shape of a project directory.
type Layout struct {
	Name      string
	ProjectID string
	Dirs      []string
	Files     []FileSpec
}

const defaultGitignore = `# Data files are tracked outside git.
data/raw/
data/processed/
data/external/
models/
.env
`

// DefaultLayout returns the built-in data-science project layout with a
// freshly generated project ID.
func DefaultLayout(name string) *Layout {
	id := domain.NewID()
	return &Layout{
		Name:      name,
		ProjectID: id,
		Dirs: []string{
			"data/raw",
			"data/processed",
			"data/external",
			"notebooks",
			"src",
			"tests",
			"models",
			"reports/figures",
			"references",
		},
		Files: []FileSpec{
			{Path: "README.md", Content: fmt.Sprintf("# %s\n\nBootstrapped with dslab.\n", name)},
			{Path: ".gitignore", Content: defaultGitignore},
			{Path: "dslab.yaml", Content: projectMarker(name, id)},
			{Path: "data/raw/.gitkeep"},
			{Path: "data/processed/.gitkeep"},
			{Path: "data/external/.gitkeep"},
			{Path: "notebooks/.gitkeep"},
			{Path: "models/.gitkeep"},
			{Path: "reports/figures/.gitkeep"},
			{Path: "references/.gitkeep"},
		},
	}
}

// projectMarker renders the dslab.yaml stamped into a scaffolded project.
func projectMarker(name, id string) string {
	return fmt.Sprintf("apiVersion: %s\nkind: %s\nname: %s\nproject_id: %s\n",
		SupportedAPIVersion, KindProjectLayout, name, id)
}
