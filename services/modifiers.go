package services

import (
	"strconv"

	"scanquote/rates"
)

// ComputeModifierStack multiplies the six site-condition factors for an
// area under the resolved tier. Each factor resolves per (tier, category,
// code) with the (tier, category, "default") row as fallback; a total miss
// contributes 1.0 and a warning.
func ComputeModifierStack(area AreaInput, tier string, t *rates.Tables, ws *warnings) float64 {
	lookups := []struct {
		category string
		code     string
	}{
		{"era", area.Era},
		{"occupied", area.Occupied},
		{"noPowerHeat", boolCode(area.NoPowerHeat)},
		{"hazardous", boolCode(area.Hazardous)},
		{"density", strconv.Itoa(area.RoomDensity)},
		{"scanScope", area.Scope},
	}

	stack := 1.0
	for _, l := range lookups {
		factor, ok := t.ModifierFactor(tier, l.category, l.code)
		if !ok {
			factor = ws.miss("modifiers", tier+"/"+l.category+"/"+l.code, 1.0)
		}
		stack *= factor
	}
	return stack
}

func boolCode(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
