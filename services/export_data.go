package services

import "fmt"

// QuoteExportRow represents a single row in the quote export (an area
// header or a line item under it).
type QuoteExportRow struct {
	Level       int    // 0 = area header, 1 = line item
	Index       string // "1", "1.1" etc
	Description string
	Discipline  string
	SquareFeet  float64
	LOD         string
	Scope       string
	UpteamCost  *float64
	ClientPrice *float64
}

// QuoteExport holds all data needed for export.
type QuoteExport struct {
	Title       string
	UPID        string
	ClientName  string
	Tier        string
	CreatedDate string
	Rows        []QuoteExportRow
	Totals      QuoteTotals
}

// BuildQuoteExport flattens a quote into export rows: one header row per
// area with its line items indented beneath, then a header for the
// project-level lines. quote may be nil for a not-yet-priced export.
func BuildQuoteExport(form *ScopingForm, quote *QuoteResult, shells []LineItemShell, totals QuoteTotals, createdDate string) QuoteExport {
	data := QuoteExport{
		Title:       form.ProjectName,
		UPID:        form.UPID,
		ClientName:  form.ClientName,
		CreatedDate: createdDate,
		Totals:      totals,
	}
	if data.Title == "" {
		data.Title = "Scan-to-BIM Quote"
	}
	if quote != nil {
		data.Tier = quote.Tier
	}

	byArea := make(map[string][]LineItemShell)
	var project []LineItemShell
	for _, s := range shells {
		if s.Category == CategoryArea {
			byArea[s.AreaName] = append(byArea[s.AreaName], s)
		} else {
			project = append(project, s)
		}
	}

	section := 0
	addSection := func(header string, sqft float64, items []LineItemShell) {
		if len(items) == 0 {
			return
		}
		section++
		data.Rows = append(data.Rows, QuoteExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", section),
			Description: header,
			SquareFeet:  sqft,
		})
		for i, s := range items {
			data.Rows = append(data.Rows, QuoteExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", section, i+1),
				Description: s.Description,
				Discipline:  s.Discipline,
				SquareFeet:  s.SquareFeet,
				LOD:         s.LOD,
				Scope:       s.Scope,
				UpteamCost:  s.UpteamCost,
				ClientPrice: s.ClientPrice,
			})
		}
	}

	for _, area := range form.Areas {
		addSection(area.Name, area.SquareFootage, byArea[area.Name])
	}
	addSection("Project items", 0, project)

	return data
}
