package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"scanquote/rates"
	"scanquote/services"
)

// loadTables builds the rate-table snapshot every pricing command works
// from, layering the optional --rates file over the built-in defaults.
func loadTables() (*rates.Tables, error) {
	tables, err := rates.Load(ratesFile)
	if err != nil {
		return nil, err
	}
	if ratesFile != "" {
		logger.Debug("loaded rate config overlay", zap.String("path", ratesFile))
	}
	return tables, nil
}

// loadValidForm reads a scoping form and rejects it before pricing if
// structural validation fails.
func loadValidForm(path string) (*services.ScopingForm, error) {
	form, err := services.LoadForm(path)
	if err != nil {
		return nil, err
	}
	if result := services.ValidateForm(form); !result.Valid {
		return nil, validationError(result)
	}
	logger.Debug("loaded scoping form",
		zap.String("path", path),
		zap.String("upid", form.UPID),
		zap.Int("areas", len(form.Areas)))
	return form, nil
}

func validationError(result services.ValidationResult) error {
	var b strings.Builder
	b.WriteString("invalid scoping form:")
	for _, e := range result.Errors {
		b.WriteString("\n  ")
		if e.Area != "" {
			fmt.Fprintf(&b, "[%s] ", e.Area)
		}
		fmt.Fprintf(&b, "%s %s", e.Field, e.Message)
	}
	return errors.New(b.String())
}

// computePipeline runs a form through the full quote pipeline: shells,
// pricing, amount application, totals.
func computePipeline(form *services.ScopingForm, tables *rates.Tables) (*services.QuoteResult, []services.LineItemShell, services.QuoteTotals, error) {
	quote, err := services.ComputeProjectQuote(form, tables)
	if err != nil {
		return nil, nil, services.QuoteTotals{}, err
	}
	for _, w := range quote.Warnings {
		logger.Warn("rate table gap", zap.String("lookup", w.String()))
	}

	ids := &services.SequenceIDs{Prefix: "L"}
	shells := services.GenerateLineItemShells(form, ids)
	shells = services.ApplyQuoteToShells(shells, quote, ids)
	totals := services.ComputeQuoteTotals(shells)

	logger.Debug("computed quote",
		zap.String("upid", quote.UPID),
		zap.String("tier", quote.Tier),
		zap.Float64("total", quote.Total),
		zap.String("integrity", totals.IntegrityStatus))

	return quote, shells, totals, nil
}

// writeJSON renders v as indented JSON, the stable machine-readable form
// of every command's output.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
