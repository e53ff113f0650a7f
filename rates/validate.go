package rates

import "fmt"

// validate rejects configurations the pricing engine cannot run on. It
// checks the single-row constants and the structural integrity of the band
// brackets; per-row rate completeness is deliberately not enforced (missing
// rows degrade to warnings at pricing time).
func validate(cfg Config) error {
	c := cfg.Constants

	// The multiplier denominator must stay positive both with and without
	// the BIM-manager component, otherwise M is undefined.
	for _, bim := range []bool{false, true} {
		f := c.PartnerCostRate(bim)
		denom := 1 - f - c.AboveTheLineRate() - c.SavingsFloor
		if denom <= 0 {
			return &ConfigError{
				Field:  "constants",
				Reason: fmt.Sprintf("multiplier denominator %.4f is not positive (f=%.4f a=%.4f s=%.4f bim_manager=%v)", denom, f, c.AboveTheLineRate(), c.SavingsFloor, bim),
			}
		}
	}

	if c.MarginFloor < 0 || c.MarginFloor >= 1 {
		return &ConfigError{Field: "constants.margin_floor", Reason: fmt.Sprintf("must be in [0,1), got %v", c.MarginFloor)}
	}
	if c.SLAMAutoThreshold <= 0 {
		return &ConfigError{Field: "constants.slam_auto_threshold", Reason: "must be positive"}
	}
	if c.MixedInteriorWeight < 0 || c.MixedInteriorWeight > 1 {
		return &ConfigError{Field: "constants.mixed_interior_weight", Reason: fmt.Sprintf("must be in [0,1], got %v", c.MixedInteriorWeight)}
	}
	if c.ExpeditedRate < 0 {
		return &ConfigError{Field: "constants.expedited_rate", Reason: "must not be negative"}
	}
	if c.ScansPerDay <= 0 {
		return &ConfigError{Field: "constants.scans_per_day", Reason: "must be positive"}
	}
	if c.DefaultCrewSize <= 0 {
		return &ConfigError{Field: "constants.default_crew_size", Reason: "must be positive"}
	}

	if err := validateBands("bands", cfg.Bands); err != nil {
		return err
	}
	if err := validateBands("mega_bands", cfg.MegaBands); err != nil {
		return err
	}

	for i, m := range cfg.Modifiers {
		if m.Factor <= 0 {
			return &ConfigError{
				Field:  fmt.Sprintf("modifiers[%d]", i),
				Reason: fmt.Sprintf("factor must be positive, got %v (%s/%s/%s)", m.Factor, m.Tier, m.Category, m.Code),
			}
		}
	}

	return nil
}

// validateBands requires a non-empty, gapless, ascending bracket list. Only
// the last bracket may be unbounded (max_sqft 0).
func validateBands(field string, bands []BandDef) error {
	if len(bands) == 0 {
		return &ConfigError{Field: field, Reason: "at least one band is required"}
	}
	sorted := sortBands(bands)
	for i, b := range sorted {
		last := i == len(sorted)-1
		if b.MaxSqft == 0 && !last {
			return &ConfigError{
				Field:  fmt.Sprintf("%s[%s]", field, b.Key),
				Reason: "only the last band may be unbounded",
			}
		}
		if !last && b.MaxSqft <= b.MinSqft {
			return &ConfigError{
				Field:  fmt.Sprintf("%s[%s]", field, b.Key),
				Reason: fmt.Sprintf("max_sqft %v must exceed min_sqft %v", b.MaxSqft, b.MinSqft),
			}
		}
		if i > 0 && sorted[i-1].MaxSqft != b.MinSqft {
			return &ConfigError{
				Field:  fmt.Sprintf("%s[%s]", field, b.Key),
				Reason: fmt.Sprintf("bracket gap: previous band ends at %v, this one starts at %v", sorted[i-1].MaxSqft, b.MinSqft),
			}
		}
	}
	return nil
}
