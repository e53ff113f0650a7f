package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scanquote/services"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export FORM",
		Short: "Export a priced quote as an Excel workbook",
		Long: `Run a scoping form through the full pipeline and write the
client-facing quote workbook: grouped line items, per-line pricing, and
the quote totals block.`,
		Example: `  scanquote export form.yaml --out quote.xlsx
  scanquote export form.yaml --rates regional.yaml --out quote.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "path of the workbook to write")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(cmd *cobra.Command, formPath, outPath string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	form, err := loadValidForm(formPath)
	if err != nil {
		return err
	}

	quote, shells, totals, err := computePipeline(form, tables)
	if err != nil {
		return err
	}

	data := services.BuildQuoteExport(form, quote, shells, totals, time.Now().Format("2006-01-02"))
	workbook, err := services.GenerateQuoteExcel(data)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, workbook, 0o644); err != nil {
		return fmt.Errorf("write workbook %s: %w", outPath, err)
	}
	logger.Debug("wrote quote workbook",
		zap.String("path", outPath),
		zap.Int("bytes", len(workbook)))

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d line items, total %s)\n",
		outPath, len(shells), services.FormatUSD(quote.Total))
	return nil
}
