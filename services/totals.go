package services

// Margin integrity thresholds and statuses. These are pricing policy, not
// structural limits; adjust them here, not at call sites.
const (
	IntegrityBlockBelowPercent = 40.0
	IntegrityPassAtPercent     = 45.0
)

const (
	IntegrityBlocked = "blocked"
	IntegrityWarning = "warning"
	IntegrityPassed  = "passed"
)

// FlagUnpricedItems marks totals computed while some lines still had a
// null cost or price. Those lines are excluded from the margin math.
const FlagUnpricedItems = "unpriced_items"

// QuoteTotals is the margin rollup over a quote's line items.
type QuoteTotals struct {
	TotalClientPrice   float64  `json:"total_client_price"`
	TotalUpteamCost    float64  `json:"total_upteam_cost"`
	GrossMargin        float64  `json:"gross_margin"`
	GrossMarginPercent float64  `json:"gross_margin_percent"`
	IntegrityStatus    string   `json:"integrity_status"`
	IntegrityFlags     []string `json:"integrity_flags,omitempty"`
}

// Blocked reports whether the totals fail the margin gate. A blocked
// quote must not be saved or sent.
func (t QuoteTotals) Blocked() bool {
	return t.IntegrityStatus == IntegrityBlocked
}

// ComputeQuoteTotals rolls line items up into margin totals and an
// integrity classification. Items missing either amount are left out of
// the sums and reported through the unpriced_items flag.
func ComputeQuoteTotals(items []LineItemShell) QuoteTotals {
	var totals QuoteTotals
	unpriced := 0
	for _, item := range items {
		if item.ClientPrice == nil || item.UpteamCost == nil {
			unpriced++
			continue
		}
		totals.TotalClientPrice += *item.ClientPrice
		totals.TotalUpteamCost += *item.UpteamCost
	}
	totals.GrossMargin = totals.TotalClientPrice - totals.TotalUpteamCost
	if totals.TotalClientPrice != 0 {
		totals.GrossMarginPercent = (totals.GrossMargin / totals.TotalClientPrice) * 100
	}

	switch {
	case totals.GrossMarginPercent < IntegrityBlockBelowPercent:
		totals.IntegrityStatus = IntegrityBlocked
	case totals.GrossMarginPercent < IntegrityPassAtPercent:
		totals.IntegrityStatus = IntegrityWarning
	default:
		totals.IntegrityStatus = IntegrityPassed
	}
	if unpriced > 0 {
		totals.IntegrityFlags = append(totals.IntegrityFlags, FlagUnpricedItems)
	}
	return totals
}
