package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dslab/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	var (
		name        string
		manifest    string
		planOnly    bool
		autoApprove bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a data-science project directory",
		Long:  "Creates the project folder layout (data/, notebooks/, src/, ...) under the given directory, from the built-in layout or a ProjectLayout manifest.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir := getBaseDir(cmd)
			if len(args) == 1 {
				baseDir = args[0]
			}

			// 1. Resolve the desired layout.
			var (
				layout *scaffold.Layout
				err    error
			)
			if manifest != "" {
				layout, err = scaffold.LoadManifest(manifest)
				if err != nil {
					return err
				}
			} else {
				if name == "" {
					abs, err := filepath.Abs(baseDir)
					if err != nil {
						return fmt.Errorf("resolve base dir: %w", err)
					}
					name = filepath.Base(abs)
				}
				layout = scaffold.DefaultLayout(name)
			}

			// 2. Diff against the filesystem.
			plan, err := scaffold.BuildPlan(layout, baseDir)
			if err != nil {
				return err
			}

			// 3. Plan-only mode: print and signal changes via exit code 2.
			if planOnly {
				if err := renderPlan(cmd, plan); err != nil {
					return err
				}
				if plan.HasChanges() {
					os.Exit(2)
				}
				return nil
			}

			if len(plan.Errors) > 0 {
				fmt.Fprintf(os.Stderr, "Layout has %d conflict(s) with %s:\n", len(plan.Errors), baseDir)
				for _, e := range plan.Errors {
					fmt.Fprintf(os.Stderr, "  - %s: %s\n", e.Path, e.Message)
				}
				return fmt.Errorf("resolve the conflicts and retry")
			}

			if !plan.HasChanges() {
				if !getQuiet(cmd) {
					fmt.Fprintln(os.Stdout, "Project layout is already up-to-date.")
				}
				return nil
			}

			// 4. Show the plan and confirm unless auto-approved.
			if !getQuiet(cmd) {
				scaffold.FormatText(os.Stdout, plan, getNoColor(cmd))
			}
			if !autoApprove {
				ok, err := confirm("\nCreate these entries? [y/N] ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stdout, "Init cancelled.")
					return nil
				}
			}

			// 5. Apply.
			result := scaffold.Apply(plan)
			for _, res := range result.Results {
				if res.Err != nil {
					fmt.Fprintf(os.Stderr, "  failed: %v\n", res.Err)
				}
			}
			if result.Failed() > 0 {
				return fmt.Errorf("%d of %d entries failed", result.Failed(), len(result.Results))
			}
			if getQuiet(cmd) {
				fmt.Fprintln(os.Stdout, layout.ProjectID)
			} else {
				fmt.Fprintf(os.Stdout, "Created %d entries under %s (project %s).\n",
					result.Created(), baseDir, layout.ProjectID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (default: base directory name)")
	cmd.Flags().StringVar(&manifest, "manifest", "", "Path to a ProjectLayout manifest")
	cmd.Flags().BoolVar(&planOnly, "plan", false, "Show the plan without applying it")
	cmd.Flags().BoolVar(&autoApprove, "auto-approve", false, "Apply without interactive confirmation")

	return cmd
}

// renderPlan prints a scaffold plan in the requested output format.
func renderPlan(cmd *cobra.Command, plan *scaffold.Plan) error {
	if getOutputFormat(cmd) == "json" {
		return scaffold.FormatJSON(os.Stdout, plan)
	}
	scaffold.FormatText(os.Stdout, plan, getNoColor(cmd))
	return nil
}

// confirm prompts on stdout and reads a yes/no answer from stdin.
func confirm(prompt string) (bool, error) {
	if !isStdinTTY() {
		return false, fmt.Errorf("confirmation required but stdin is not a terminal; use --auto-approve")
	}
	_, _ = fmt.Fprint(os.Stdout, prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
