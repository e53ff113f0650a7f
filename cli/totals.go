package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"scanquote/services"
)

// NewTotalsCommand creates the totals command.
func NewTotalsCommand() *cobra.Command {
	var (
		enforce bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "totals FORM",
		Short: "Compute quote totals and the margin integrity verdict",
		Long: `Run a scoping form through the full pipeline and report the margin
rollup: client price, upteam cost, gross margin, and the integrity
classification.

With --enforce, a blocked quote fails the command with exit code 2, so
automation can gate on integrity the way the quote workflow does.`,
		Example: `  scanquote totals form.yaml
  scanquote totals form.yaml --enforce
  scanquote totals form.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTotals(cmd, args[0], enforce, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&enforce, "enforce", false, "fail when the integrity check blocks the quote")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit totals as JSON")

	return cmd
}

func runTotals(cmd *cobra.Command, formPath string, enforce, jsonOut bool) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	form, err := loadValidForm(formPath)
	if err != nil {
		return err
	}

	_, _, totals, err := computePipeline(form, tables)
	if err != nil {
		return err
	}

	if jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), totals); err != nil {
			return err
		}
	} else {
		renderTotals(cmd.OutOrStdout(), totals)
	}

	if enforce && totals.Blocked() {
		return fmt.Errorf("%w: gross margin %.1f%% is below %.0f%%",
			errQuoteBlocked, totals.GrossMarginPercent, services.IntegrityBlockBelowPercent)
	}
	return nil
}
