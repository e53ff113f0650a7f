// Package cli provides the scanquote command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via -ldflags.
var Version = "0.1.0"

var (
	ratesFile string
	verbose   bool

	logger = zap.NewNop()
)

// errQuoteBlocked distinguishes a failed integrity gate from an ordinary
// error so Execute can report it with its own exit code.
var errQuoteBlocked = errors.New("quote blocked by integrity check")

// NewRootCommand creates and returns the root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scanquote",
		Short: "Deterministic quote engine for scan-to-BIM projects",
		Long: `scanquote prices scan-to-BIM projects from a YAML scoping form.

It resolves the scan tier, walks the rate tables, applies condition
modifiers and travel cost, and enforces the margin floor and project
minimums. The same form also drives line-item shells, quote totals with
an integrity gate, and stage-to-stage field prefill for production
handoffs.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&ratesFile, "rates", "", "rate config file overlaying the built-in tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(NewQuoteCommand())
	rootCmd.AddCommand(NewShellsCommand())
	rootCmd.AddCommand(NewTotalsCommand())
	rootCmd.AddCommand(NewCascadeCommand())
	rootCmd.AddCommand(NewTablesCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
// Blocked quotes exit 2 so scripts can tell a failed gate from a crash.
func Execute() int {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errQuoteBlocked) {
			return 2
		}
		return 1
	}
	return 0
}
