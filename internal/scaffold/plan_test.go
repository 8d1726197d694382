package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout() *Layout {
	return &Layout{
		Name:      "p",
		ProjectID: "test-id",
		Dirs:      []string{"data/raw", "src"},
		Files: []FileSpec{
			{Path: "README.md", Content: "# p\n"},
			{Path: "data/raw/.gitkeep"},
		},
	}
}

func TestBuildPlan_EmptyDir(t *testing.T) {
	base := t.TempDir()

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	s := plan.Summary()
	assert.Equal(t, 4, s.Creates)
	assert.Equal(t, 0, s.Skips)
	assert.Equal(t, 0, s.Errors)
	assert.True(t, plan.HasChanges())

	// Dirs come before files.
	assert.Equal(t, KindDir, plan.Actions[0].Kind)
	assert.Equal(t, KindDir, plan.Actions[1].Kind)
	assert.Equal(t, KindFile, plan.Actions[2].Kind)
}

func TestBuildPlan_ExistingEntriesAreSkipped(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data", "raw"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(base, "README.md"), []byte("existing"), 0o640))

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	s := plan.Summary()
	assert.Equal(t, 2, s.Creates) // src dir + .gitkeep
	assert.Equal(t, 2, s.Skips)
	assert.Equal(t, 0, s.Errors)
}

func TestBuildPlan_KindConflicts(t *testing.T) {
	base := t.TempDir()
	// Layout dir exists as a file, layout file exists as a dir.
	require.NoError(t, os.WriteFile(filepath.Join(base, "src"), []byte("oops"), 0o640))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "README.md"), 0o750))

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	require.Len(t, plan.Errors, 2)
	assert.True(t, plan.HasChanges())

	var messages []string
	for _, e := range plan.Errors {
		messages = append(messages, e.Path+": "+e.Message)
	}
	assert.Contains(t, strings.Join(messages, "\n"), "src: exists as a file")
	assert.Contains(t, strings.Join(messages, "\n"), "README.md: exists as a directory")
}

func TestBuildPlan_InvalidLayout(t *testing.T) {
	_, err := BuildPlan(&Layout{Name: "", Dirs: []string{"a"}}, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestBuildPlan_NoChangesWhenFullyApplied(t *testing.T) {
	base := t.TempDir()

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)
	result := Apply(plan)
	require.Equal(t, 0, result.Failed())

	plan2, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)
	assert.False(t, plan2.HasChanges())
	assert.Equal(t, 4, plan2.Summary().Skips)
}
