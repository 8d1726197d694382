package scaffold

import (
	"encoding/json"
	"fmt"
	"io"
)

// ANSI color codes.
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// FormatText writes a human-readable plan to w.
// If noColor is true, ANSI codes are suppressed.
func FormatText(w io.Writer, plan *Plan, noColor bool) {
	c := func(code string) string {
		if noColor {
			return ""
		}
		return code
	}

	if !plan.HasChanges() {
		fmt.Fprintln(w, "No changes. Project layout is up-to-date.")
		return
	}

	for _, a := range plan.Actions {
		switch a.Operation {
		case OpCreate:
			fmt.Fprintf(w, "  %s+%s %s %s will be created\n",
				c(colorGreen), c(colorReset), a.Kind, a.Path)
		case OpSkip:
			fmt.Fprintf(w, "  %s·%s %s %s already present\n",
				c(colorDim), c(colorReset), a.Kind, a.Path)
		}
	}

	for _, e := range plan.Errors {
		fmt.Fprintf(w, "  %s✗%s %s: %s\n", c(colorRed), c(colorReset), e.Path, e.Message)
	}

	s := plan.Summary()
	fmt.Fprintf(w, "\n%sPlan:%s %d to create, %d already present.",
		c(colorDim), c(colorReset), s.Creates, s.Skips)
	if s.Errors > 0 {
		fmt.Fprintf(w, " %s%d conflict(s).%s", c(colorRed), s.Errors, c(colorReset))
	}
	fmt.Fprintln(w)
}

// FormatJSON writes the plan as JSON to w.
func FormatJSON(w io.Writer, plan *Plan) error {
	type jsonAction struct {
		Operation string `json:"operation"`
		Kind      string `json:"kind"`
		Path      string `json:"path"`
	}
	type jsonPlan struct {
		BaseDir string       `json:"base_dir"`
		Actions []jsonAction `json:"actions"`
		Errors  []PlanError  `json:"errors,omitempty"`
		Summary Summary      `json:"summary"`
	}

	out := jsonPlan{
		BaseDir: plan.BaseDir,
		Actions: make([]jsonAction, 0, len(plan.Actions)),
		Errors:  plan.Errors,
		Summary: plan.Summary(),
	}
	for _, a := range plan.Actions {
		out.Actions = append(out.Actions, jsonAction{
			Operation: a.Operation.String(),
			Kind:      a.Kind.String(),
			Path:      a.Path,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
