package scaffold

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CreatesLayout(t *testing.T) {
	base := t.TempDir()

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	result := Apply(plan)
	assert.Equal(t, 4, result.Created())
	assert.Equal(t, 0, result.Failed())

	info, err := os.Stat(filepath.Join(base, "data", "raw"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	content, err := os.ReadFile(filepath.Join(base, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# p\n", string(content))

	// Placeholder files may be empty.
	info, err = os.Stat(filepath.Join(base, "data", "raw", ".gitkeep"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestApply_NeverOverwritesExistingFiles(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "README.md"), []byte("mine"), 0o640))

	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)
	result := Apply(plan)
	assert.Equal(t, 0, result.Failed())

	content, err := os.ReadFile(filepath.Join(base, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestApply_DefaultLayoutEndToEnd(t *testing.T) {
	base := t.TempDir()
	layout := DefaultLayout("demo")

	plan, err := BuildPlan(layout, base)
	require.NoError(t, err)
	result := Apply(plan)
	require.Equal(t, 0, result.Failed())

	marker, err := os.ReadFile(filepath.Join(base, "dslab.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(marker), "kind: ProjectLayout")
	assert.Contains(t, string(marker), layout.ProjectID)

	for _, d := range layout.Dirs {
		info, err := os.Stat(filepath.Join(base, d))
		require.NoError(t, err, "dir %s", d)
		assert.True(t, info.IsDir())
	}
}

func TestFormatText(t *testing.T) {
	base := t.TempDir()
	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatText(&buf, plan, true)
	out := buf.String()
	assert.Contains(t, out, "+ dir data/raw will be created")
	assert.Contains(t, out, "+ file README.md will be created")
	assert.Contains(t, out, "Plan: 4 to create, 0 already present.")
	assert.NotContains(t, out, "\033[", "noColor must suppress ANSI codes")
}

func TestFormatText_NoChanges(t *testing.T) {
	base := t.TempDir()
	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)
	Apply(plan)

	plan2, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatText(&buf, plan2, true)
	assert.Contains(t, buf.String(), "No changes.")
}

func TestFormatJSON(t *testing.T) {
	base := t.TempDir()
	plan, err := BuildPlan(testLayout(), base)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, plan))

	var decoded struct {
		BaseDir string `json:"base_dir"`
		Actions []struct {
			Operation string `json:"operation"`
			Kind      string `json:"kind"`
			Path      string `json:"path"`
		} `json:"actions"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, base, decoded.BaseDir)
	require.Len(t, decoded.Actions, 4)
	assert.Equal(t, "create", decoded.Actions[0].Operation)
	assert.Equal(t, "dir", decoded.Actions[0].Kind)
	assert.Equal(t, 4, decoded.Summary.Creates)
}
