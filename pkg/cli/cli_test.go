package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh root command with the given args and returns
// captured stdout and the execution error.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	restore := captureStdout(t)
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return restore(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dslab version dev")
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := runCLI(t, "-o", "json", "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "dev"`)
}

func TestRoot_InvalidOutputFormat(t *testing.T) {
	_, err := runCLI(t, "-o", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestInitCmd_AutoApprove(t *testing.T) {
	base := t.TempDir()

	out, err := runCLI(t, "init", base, "--name", "demo", "--auto-approve")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	info, err := os.Stat(filepath.Join(base, "data", "raw"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, err = os.Stat(filepath.Join(base, "dslab.yaml"))
	assert.NoError(t, err)
}

func TestInitCmd_Idempotent(t *testing.T) {
	base := t.TempDir()

	_, err := runCLI(t, "init", base, "--name", "demo", "--auto-approve")
	require.NoError(t, err)

	out, err := runCLI(t, "init", base, "--name", "demo", "--auto-approve")
	require.NoError(t, err)
	assert.Contains(t, out, "up-to-date")
}

func TestInitCmd_PlanOnlyNoChanges(t *testing.T) {
	base := t.TempDir()
	_, err := runCLI(t, "init", base, "--name", "demo", "--auto-approve")
	require.NoError(t, err)

	// A plan over an up-to-date dir has no changes, so no exit(2) path.
	out, err := runCLI(t, "init", base, "--name", "demo", "--plan")
	require.NoError(t, err)
	assert.Contains(t, out, "No changes.")
}

func TestInitCmd_BaseDirFromEnv(t *testing.T) {
	base := t.TempDir()
	t.Setenv("DSLAB_BASE_DIR", base)

	// No positional dir argument: the configured base directory is used.
	_, err := runCLI(t, "init", "--name", "demo", "--auto-approve")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "dslab.yaml"))
	assert.NoError(t, err)
}

func TestInitCmd_ArgOverridesBaseDir(t *testing.T) {
	flagDir := t.TempDir()
	argDir := t.TempDir()

	_, err := runCLI(t, "--base-dir", flagDir, "init", argDir, "--name", "demo", "--auto-approve")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(argDir, "dslab.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(flagDir, "dslab.yaml"))
	assert.True(t, os.IsNotExist(err))
}

// The plan-only path terminates the process with code 2 when the plan has
// pending changes, so it is exercised in a child process running this same
// test binary.
func TestInitCmd_PlanOnlyExitCode(t *testing.T) {
	if os.Getenv("DSLAB_TEST_PLAN_EXIT") == "1" {
		rootCmd := newRootCmd()
		rootCmd.SetArgs([]string{"init", os.Getenv("DSLAB_TEST_PLAN_DIR"), "--name", "demo", "--plan"})
		if err := rootCmd.Execute(); err != nil {
			os.Exit(1)
		}
		os.Exit(0)
	}

	base := t.TempDir()
	cmd := exec.Command(os.Args[0], "-test.run=^TestInitCmd_PlanOnlyExitCode$")
	cmd.Env = append(os.Environ(),
		"DSLAB_TEST_PLAN_EXIT=1",
		"DSLAB_TEST_PLAN_DIR="+base,
	)
	err := cmd.Run()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestInitCmd_QuietPrintsProjectID(t *testing.T) {
	base := t.TempDir()

	out, err := runCLI(t, "-q", "init", base, "--name", "demo", "--auto-approve")
	require.NoError(t, err)

	marker, readErr := os.ReadFile(filepath.Join(base, "dslab.yaml"))
	require.NoError(t, readErr)
	assert.Contains(t, string(marker), "project_id: "+
		// quiet mode prints exactly the project id
		firstLine(out))
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}

func TestInitCmd_Manifest(t *testing.T) {
	base := t.TempDir()
	manifest := filepath.Join(t.TempDir(), "layout.yaml")
	content := `apiVersion: dslab/v1
kind: ProjectLayout
name: custom
dirs: [input, output]
files:
  - path: NOTES.md
    content: "notes\n"
`
	require.NoError(t, os.WriteFile(manifest, []byte(content), 0o600))

	_, err := runCLI(t, "init", base, "--manifest", manifest, "--auto-approve")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(base, "input"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	notes, err := os.ReadFile(filepath.Join(base, "NOTES.md"))
	require.NoError(t, err)
	assert.Equal(t, "notes\n", string(notes))
}

func TestInitCmd_ConflictFails(t *testing.T) {
	base := t.TempDir()
	// "src" exists as a file, the default layout wants a directory.
	require.NoError(t, os.WriteFile(filepath.Join(base, "src"), []byte("x"), 0o640))

	_, err := runCLI(t, "init", base, "--name", "demo", "--auto-approve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict")
}

func TestSortCmd(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "sales.csv"), []byte("a,b\n"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(base, "misc.xyz"), []byte(""), 0o640))

	out, err := runCLI(t, "sort", base)
	require.NoError(t, err)
	assert.Contains(t, out, "Moved")
	assert.Contains(t, out, "Skipped 1 file(s)")

	_, err = os.Stat(filepath.Join(base, "data", "raw", "sales.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "sales.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestSortCmd_DryRun(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "sales.csv"), []byte("a,b\n"), 0o640))

	out, err := runCLI(t, "sort", base, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "sales.csv")

	// Dry run must not move anything.
	_, err = os.Stat(filepath.Join(base, "sales.csv"))
	assert.NoError(t, err)
}

func TestSortCmd_Copy(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "sales.csv"), []byte("a,b\n"), 0o640))

	out, err := runCLI(t, "sort", base, "--copy")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied")

	_, err = os.Stat(filepath.Join(base, "sales.csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "data", "raw", "sales.csv"))
	assert.NoError(t, err)
}

func TestSortCmd_BaseDirFromEnv(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "sales.csv"), []byte("a,b\n"), 0o640))
	t.Setenv("DSLAB_BASE_DIR", base)

	out, err := runCLI(t, "sort")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved")

	_, err = os.Stat(filepath.Join(base, "data", "raw", "sales.csv"))
	assert.NoError(t, err)
}

func TestSortCmd_NothingToSort(t *testing.T) {
	out, err := runCLI(t, "sort", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to sort.")
}

func writeStatsCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.csv")
	content := "name,score\nada,2\ngrace,4\nlin,9\nmary,5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestStatsCmd_Describe(t *testing.T) {
	out, err := runCLI(t, "stats", writeStatsCSV(t), "--column", "score")
	require.NoError(t, err)
	assert.Contains(t, out, "count:  4")
	assert.Contains(t, out, "mean:   5")
	assert.Contains(t, out, "min:    2")
	assert.Contains(t, out, "max:    9")
}

func TestStatsCmd_DescribeJSON(t *testing.T) {
	out, err := runCLI(t, "-o", "json", "stats", writeStatsCSV(t), "--column", "score")
	require.NoError(t, err)
	assert.Contains(t, out, `"column": "score"`)
	assert.Contains(t, out, `"count": 4`)
}

func TestStatsCmd_Scale(t *testing.T) {
	out, err := runCLI(t, "stats", writeStatsCSV(t), "--column", "score", "--scale", "minmax")
	require.NoError(t, err)
	assert.Contains(t, out, "0\n")
	assert.Contains(t, out, "1\n")
}

func TestStatsCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"missing column flag", []string{"stats", "whatever.csv"}, "column"},
		{"unknown column", []string{"stats", "", "--column", "nope"}, "not found"},
		{"non-numeric column", []string{"stats", "", "--column", "name"}, "need float or int"},
		{"unknown scaler", []string{"stats", "", "--column", "score", "--scale", "log"}, "unknown scaler"},
	}
	csvPath := writeStatsCSV(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := make([]string, len(tt.args))
			copy(args, tt.args)
			for i, a := range args {
				if a == "" {
					args[i] = csvPath
				}
			}
			_, err := runCLI(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestStatsCmd_MissingFile(t *testing.T) {
	_, err := runCLI(t, "stats", filepath.Join(t.TempDir(), "nope.csv"), "--column", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}
