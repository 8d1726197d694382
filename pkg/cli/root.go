// Package cli implements the dslab command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"dslab/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if getOutputFormat(rootCmd) == "json" {
			_ = printJSON(os.Stdout, map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		output   string
		logLevel string
		baseDir  string
		noColor  bool
		quiet    bool
	)

	rootCmd := &cobra.Command{
		Use:           "dslab",
		Short:         "Data-science workbench CLI",
		Long:          "dslab scaffolds data-science project directories, sorts loose files into them, and computes column statistics over CSV data.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env values fill in unset environment variables.
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}

			applyConfigFallback(cmd.Root().PersistentFlags(), cfg)

			if err := validateOutputFormat(output); err != nil {
				return err
			}

			// The bound flag vars now hold the effective values.
			cfg.LogLevel = logLevel
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
			logger := slog.New(handler)
			slog.SetDefault(logger)
			for _, warning := range cfg.Warnings {
				logger.Warn(warning)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&baseDir, "base-dir", ".", "Default project directory when no dir argument is given")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newSortCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// applyConfigFallback fills unset flags from the environment config.
// Precedence: flag > env > default.
func applyConfigFallback(flags *pflag.FlagSet, cfg *config.Config) {
	if !flags.Changed("output") {
		_ = flags.Set("output", cfg.Output)
	}
	if !flags.Changed("log-level") {
		_ = flags.Set("log-level", cfg.LogLevel)
	}
	if !flags.Changed("base-dir") {
		_ = flags.Set("base-dir", cfg.BaseDir)
	}
	if !flags.Changed("no-color") && cfg.NoColor {
		_ = flags.Set("no-color", "true")
	}
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
