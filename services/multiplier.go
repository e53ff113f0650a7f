package services

import (
	"fmt"

	"scanquote/rates"
)

// MultiplierBreakdown records the markup components a quote was priced
// with. M converts a variable cost basis into client price.
type MultiplierBreakdown struct {
	F float64 `json:"f"` // partner-cost rate
	A float64 `json:"a"` // above-the-line rate
	S float64 `json:"s"` // savings floor
	M float64 `json:"m"` // 1 / (1 - f - a - s)
}

// ComputeMultiplier derives M from the configured rate components. The
// BIM-manager component joins f only when active. A non-positive
// denominator means the configured rates consume the entire price: that is
// a fatal configuration error, not a recoverable condition.
func ComputeMultiplier(c rates.Constants, bimManager bool) (MultiplierBreakdown, error) {
	f := c.PartnerCostRate(bimManager)
	a := c.AboveTheLineRate()
	s := c.SavingsFloor

	denom := 1 - f - a - s
	if denom <= 0 {
		return MultiplierBreakdown{}, &rates.ConfigError{
			Field:  "constants",
			Reason: fmt.Sprintf("multiplier denominator %.4f is not positive (f=%.4f a=%.4f s=%.4f)", denom, f, a, s),
		}
	}

	return MultiplierBreakdown{F: f, A: a, S: s, M: 1 / denom}, nil
}
