package cli

import (
	"github.com/spf13/cobra"

	"scanquote/services"
)

// NewShellsCommand creates the shells command.
func NewShellsCommand() *cobra.Command {
	var (
		priced  bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "shells FORM",
		Short: "Generate line-item shells from a scoping form",
		Long: `Generate the ordered line-item shells a scoping form expands into.

By default shells carry no prices beyond custom-item amounts typed into
the form; --priced runs the quote engine and applies its amounts the way
a saved quote would.`,
		Example: `  scanquote shells form.yaml
  scanquote shells form.yaml --priced
  scanquote shells form.yaml --priced --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShells(cmd, args[0], priced, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&priced, "priced", false, "apply quote engine amounts to the shells")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit shells as JSON")

	return cmd
}

func runShells(cmd *cobra.Command, formPath string, priced, jsonOut bool) error {
	form, err := loadValidForm(formPath)
	if err != nil {
		return err
	}

	var shells []services.LineItemShell
	if priced {
		tables, err := loadTables()
		if err != nil {
			return err
		}
		_, shells, _, err = computePipeline(form, tables)
		if err != nil {
			return err
		}
	} else {
		shells = services.GenerateLineItemShells(form, &services.SequenceIDs{Prefix: "L"})
	}

	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), shells)
	}
	renderShells(cmd.OutOrStdout(), shells)
	return nil
}
