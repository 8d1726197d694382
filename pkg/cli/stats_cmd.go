package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"dslab/internal/frame"
	"dslab/internal/stats"
)

func newStatsCmd() *cobra.Command {
	var (
		column string
		scale  string
	)

	cmd := &cobra.Command{
		Use:   "stats <csv-file>",
		Short: "Describe or scale a numeric CSV column",
		Long:  "Loads a CSV file and prints descriptive statistics for the given column, or the scaled values when --scale is set.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0]) //nolint:gosec // user-specified input file
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close() //nolint:errcheck

			fr, err := frame.ReadCSV(f)
			if err != nil {
				return err
			}
			xs, err := fr.Column(column)
			if err != nil {
				return err
			}

			if scale != "" {
				scaler, err := stats.NewScaler(scale)
				if err != nil {
					return err
				}
				out, err := stats.FitTransform(scaler, xs)
				if err != nil {
					return fmt.Errorf("scale column %q: %w", column, err)
				}
				return renderValues(cmd, out)
			}

			summary, err := stats.Describe(xs)
			if err != nil {
				return fmt.Errorf("describe column %q: %w", column, err)
			}
			return renderSummary(cmd, column, summary)
		},
	}

	cmd.Flags().StringVarP(&column, "column", "c", "", "Column to analyze (required)")
	cmd.Flags().StringVar(&scale, "scale", "", "Scale values instead of describing (standard, minmax, robust)")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func renderSummary(cmd *cobra.Command, column string, s stats.Summary) error {
	if getOutputFormat(cmd) == "json" {
		return printJSON(os.Stdout, map[string]any{"column": column, "summary": s})
	}
	fmt.Fprintf(os.Stdout, "column: %s\n", column)
	fmt.Fprintf(os.Stdout, "count:  %d\n", s.Count)
	fmt.Fprintf(os.Stdout, "mean:   %s\n", formatFloat(s.Mean))
	fmt.Fprintf(os.Stdout, "std:    %s\n", formatFloat(s.Std))
	fmt.Fprintf(os.Stdout, "min:    %s\n", formatFloat(s.Min))
	fmt.Fprintf(os.Stdout, "p25:    %s\n", formatFloat(s.P25))
	fmt.Fprintf(os.Stdout, "median: %s\n", formatFloat(s.Median))
	fmt.Fprintf(os.Stdout, "p75:    %s\n", formatFloat(s.P75))
	fmt.Fprintf(os.Stdout, "max:    %s\n", formatFloat(s.Max))
	return nil
}

func renderValues(cmd *cobra.Command, xs []float64) error {
	if getOutputFormat(cmd) == "json" {
		return printJSON(os.Stdout, map[string]any{"values": xs})
	}
	for _, v := range xs {
		fmt.Fprintln(os.Stdout, formatFloat(v))
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
