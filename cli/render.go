package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"scanquote/rates"
	"scanquote/services"
)

// renderQuote writes the human-readable quote breakdown: the resolved
// tier and multiplier, a per-area table, project-level components, and
// the enforcement trail from subtotal to final total.
func renderQuote(w io.Writer, quote *services.QuoteResult) {
	fmt.Fprintf(w, "Quote %s\n", quote.UPID)
	fmt.Fprintf(w, "Tier %s", quote.Tier)
	if quote.BIMManagerActive {
		fmt.Fprint(w, ", BIM manager active")
	}
	fmt.Fprintf(w, ", multiplier %.4f\n\n", quote.Multiplier.M)

	if len(quote.Areas) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Area", "Type", "Sq Ft", "Band", "Modifiers", "Cost", "Price"})
		for _, area := range quote.Areas {
			band := area.Band
			if area.MegaBand != "" {
				band = area.MegaBand
			}
			t.AppendRow(table.Row{
				area.Name,
				area.BuildingType,
				fmt.Sprintf("%.0f", area.SquareFeet),
				band,
				fmt.Sprintf("%.3f", area.ModifierStack),
				services.FormatUSD(area.TotalCost),
				services.FormatUSD(area.TotalPrice),
			})
		}
		t.AppendFooter(table.Row{"", "", "", "", "",
			services.FormatUSD(quote.AreaCostTotal),
			services.FormatUSD(quote.AreaPriceTotal)})
		t.Render()
		fmt.Fprintln(w)
	}

	if quote.GeoreferencingPrice != 0 {
		fmt.Fprintf(w, "Georeferencing      %12s\n", services.FormatUSD(quote.GeoreferencingPrice))
	}
	if quote.TravelPrice != 0 {
		fmt.Fprintf(w, "Travel (%s)    %12s\n", quote.TravelMode, services.FormatUSD(quote.TravelPrice))
	}
	if quote.ExpeditedSurcharge != 0 {
		fmt.Fprintf(w, "Expedited           %12s\n", services.FormatUSD(quote.ExpeditedSurcharge))
	}

	fmt.Fprintf(w, "Subtotal            %12s\n", services.FormatUSD(quote.Subtotal))
	if quote.FloorAdjustment > 0 {
		fmt.Fprintf(w, "Margin floor        %12s\n", services.FormatUSD(quote.FloorAdjustment))
	}
	if quote.MinimumEnforced {
		fmt.Fprintf(w, "Project minimum     %12s\n", services.FormatUSD(quote.MinimumApplied))
	}
	fmt.Fprintf(w, "Total               %12s\n", services.FormatUSD(quote.Total))

	if len(quote.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d rate table warning(s):\n", len(quote.Warnings))
		for _, warning := range quote.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
}

// renderShells writes the line-item table. Unpriced lines show a dash so
// manual-entry gaps stand out.
func renderShells(w io.Writer, shells []services.LineItemShell) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Area", "Discipline", "Description", "Cost", "Price"})
	for _, shell := range shells {
		t.AppendRow(table.Row{
			shell.ID,
			shell.AreaName,
			shell.Discipline,
			shell.Description,
			formatMoney(shell.UpteamCost),
			formatMoney(shell.ClientPrice),
		})
	}
	t.Render()
	fmt.Fprintf(w, "(%d lines)\n", len(shells))
}

func formatMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return services.FormatUSD(*v)
}

// renderTotals writes the margin rollup and its integrity verdict.
func renderTotals(w io.Writer, totals services.QuoteTotals) {
	fmt.Fprintf(w, "Client price   %12s\n", services.FormatUSD(totals.TotalClientPrice))
	fmt.Fprintf(w, "Upteam cost    %12s\n", services.FormatUSD(totals.TotalUpteamCost))
	fmt.Fprintf(w, "Gross margin   %12s  (%.1f%%)\n",
		services.FormatUSD(totals.GrossMargin), totals.GrossMarginPercent)
	fmt.Fprintf(w, "Integrity      %s\n", totals.IntegrityStatus)
	for _, flag := range totals.IntegrityFlags {
		fmt.Fprintf(w, "  flag: %s\n", flag)
	}
}

// renderCascade writes the prefill audit trail for one stage transition.
func renderCascade(w io.Writer, out *services.CascadeOutput) {
	fmt.Fprintf(w, "Prefill %s -> %s\n\n", out.From, out.To)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Field", "Type", "Value", "Resolved From"})
	for _, result := range out.Results {
		value := "-"
		if !result.Skipped && result.Value != nil {
			value = fmt.Sprintf("%v", result.Value)
		}
		origin := result.ResolvedFrom
		if result.Skipped {
			origin = result.Reason
		}
		t.AppendRow(table.Row{result.TargetField, result.Type, value, origin})
	}
	t.Render()
	fmt.Fprintf(w, "(%d of %d fields prefilled)\n", len(out.Data), len(out.Results))
}

// renderTablesSummary writes per-table row counts for a rate config.
func renderTablesSummary(w io.Writer, cfg rates.Config) {
	counts := map[string]int{
		"arch_rates":      len(cfg.ArchRates),
		"addon_rates":     len(cfg.AddOnRates),
		"cad_rates":       len(cfg.CADRates),
		"band_markups":    len(cfg.BandMarkups),
		"cad_markups":     len(cfg.CADMarkups),
		"scope_discounts": len(cfg.ScopeDiscounts),
		"scan_baselines":  len(cfg.ScanBaselines),
		"slam_baselines":  len(cfg.SLAMBaselines),
		"building_types":  len(cfg.BuildingTypes),
		"seniority":       len(cfg.SeniorityFactors),
		"modifiers":       len(cfg.Modifiers),
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Table", "Rows"})
	for _, name := range names {
		t.AppendRow(table.Row{name, counts[name]})
	}
	t.Render()
	fmt.Fprintf(w, "margin floor %.2f, SLAM auto threshold %.0f sqft\n",
		cfg.Constants.MarginFloor, cfg.Constants.SLAMAutoThreshold)
}
