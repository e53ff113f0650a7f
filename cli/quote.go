package cli

import (
	"github.com/spf13/cobra"
)

// NewQuoteCommand creates the quote command.
func NewQuoteCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "quote FORM",
		Short: "Price a scoping form",
		Long: `Price a scoping form against the rate tables.

The form is validated first; a structurally invalid form is rejected
before any pricing runs. Rate-table gaps do not abort the quote, they
surface as warnings with the documented fallback applied.`,
		Example: `  scanquote quote form.yaml
  scanquote quote form.yaml --json
  scanquote quote form.yaml --rates regional.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, args[0], jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full quote breakdown as JSON")

	return cmd
}

func runQuote(cmd *cobra.Command, formPath string, jsonOut bool) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	form, err := loadValidForm(formPath)
	if err != nil {
		return err
	}

	quote, _, _, err := computePipeline(form, tables)
	if err != nil {
		return err
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), quote)
	}
	renderQuote(cmd.OutOrStdout(), quote)
	return nil
}
