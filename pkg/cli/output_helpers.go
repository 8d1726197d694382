package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

// getNoColor returns the effective no-color setting from the root command's persistent flags.
func getNoColor(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	return v
}

// getBaseDir returns the effective default project directory from the root
// command's persistent flags.
func getBaseDir(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("base-dir")
	if v == "" {
		return "."
	}
	return v
}

// getQuiet returns the effective quiet setting from the root command's persistent flags.
func getQuiet(cmd *cobra.Command) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return v
}

func validateOutputFormat(output string) error {
	if output != "" && output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
	}
	return nil
}

// printJSON writes v as indented JSON to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isStdinTTY reports whether stdin is an interactive terminal.
func isStdinTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
