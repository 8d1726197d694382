package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dslab/internal/organize"
)

func newSortCmd() *cobra.Command {
	var (
		dest      string
		rulesPath string
		copyFiles bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "sort [dir]",
		Short: "Sort loose files into the project layout by extension",
		Long:  "Scans the regular files directly under the given directory and moves (or copies) them into the project layout using extension rules.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir := getBaseDir(cmd)
			if len(args) == 1 {
				srcDir = args[0]
			}
			if dest == "" {
				dest = srcDir
			}

			rules := organize.DefaultRules()
			if rulesPath != "" {
				var err error
				rules, err = organize.LoadRules(rulesPath)
				if err != nil {
					return err
				}
			}

			plan, err := organize.Scan(srcDir, dest, rules)
			if err != nil {
				return err
			}

			if !plan.HasChanges() {
				if !getQuiet(cmd) {
					fmt.Fprintln(os.Stdout, "Nothing to sort.")
				}
				return nil
			}

			if dryRun {
				return renderSortPlan(cmd, plan)
			}

			result := organize.Execute(plan, organize.Options{Copy: copyFiles})
			if !getQuiet(cmd) {
				verb := "Moved"
				if copyFiles {
					verb = "Copied"
				}
				for _, a := range result.Transferred {
					fmt.Fprintf(os.Stdout, "  %s %s -> %s\n", verb, a.Source, a.Dest)
				}
				if len(plan.Skipped) > 0 {
					fmt.Fprintf(os.Stdout, "Skipped %d file(s) with no matching rule.\n", len(plan.Skipped))
				}
			}
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "  failed: %v\n", e.Err)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d of %d files failed", len(result.Errors), len(plan.Actions))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Project directory to sort into (default: the scanned directory)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a SortRules manifest")
	cmd.Flags().BoolVar(&copyFiles, "copy", false, "Copy files instead of moving them")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned moves without applying them")

	return cmd
}

func renderSortPlan(cmd *cobra.Command, plan *organize.Plan) error {
	if getOutputFormat(cmd) == "json" {
		type jsonMove struct {
			Source string `json:"source"`
			Dest   string `json:"dest"`
		}
		out := struct {
			Moves   []jsonMove `json:"moves"`
			Skipped []string   `json:"skipped,omitempty"`
		}{Skipped: plan.Skipped}
		for _, a := range plan.Actions {
			out.Moves = append(out.Moves, jsonMove{Source: a.Source, Dest: a.Dest})
		}
		return printJSON(os.Stdout, out)
	}
	for _, a := range plan.Actions {
		fmt.Fprintf(os.Stdout, "  %s -> %s\n", a.Source, a.Dest)
	}
	if len(plan.Skipped) > 0 {
		fmt.Fprintf(os.Stdout, "Skipped (no rule): %d file(s)\n", len(plan.Skipped))
	}
	return nil
}
