package services

import (
	"math"
	"testing"

	"scanquote/rates"
)

func TestComputeModifierStack(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		name string
		area AreaInput
		tier string
		want float64
	}{
		{
			name: "all neutral conditions",
			area: AreaInput{Era: "modern", Occupied: "vacant", RoomDensity: 2, Scope: ScopeFull},
			tier: rates.TierX7,
			want: 1.0,
		},
		{
			// 1.12 * 1.12 * 1.08 * 1.20 * 1.24 * 0.97
			name: "everything stacked",
			area: AreaInput{
				Era:         "pre1940",
				Occupied:    "full",
				NoPowerHeat: true,
				Hazardous:   true,
				RoomDensity: 5,
				Scope:       ScopeIntOnly,
			},
			tier: rates.TierX7,
			want: 1.955395,
		},
		{
			name: "sparse areas discount scanning",
			area: AreaInput{Era: "modern", Occupied: "vacant", RoomDensity: 1, Scope: ScopeFull},
			tier: rates.TierX7,
			want: 0.94,
		},
		{
			name: "slam factors differ from x7",
			area: AreaInput{Era: "pre1940", Occupied: "vacant", RoomDensity: 2, Scope: ScopeFull},
			tier: rates.TierSLAM,
			want: 1.15,
		},
		{
			name: "hazardous is the steepest single factor",
			area: AreaInput{Era: "modern", Occupied: "vacant", Hazardous: true, RoomDensity: 2, Scope: ScopeFull},
			tier: rates.TierSLAM,
			want: 1.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ws warnings
			got := ComputeModifierStack(tt.area, tt.tier, tables, &ws)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("ComputeModifierStack() = %v, want %v", got, tt.want)
			}
			if len(ws) != 0 {
				t.Errorf("warnings = %v, want none", ws)
			}
		})
	}
}

func TestComputeModifierStack_UnknownCodeUsesCategoryDefault(t *testing.T) {
	tables := testTables(t)
	area := AreaInput{Era: "victorian", Occupied: "vacant", RoomDensity: 2, Scope: ScopeFull}

	var ws warnings
	got := ComputeModifierStack(area, rates.TierX7, tables, &ws)

	// The era default row absorbs the unknown code; no warning fires.
	if math.Abs(got-1.0) > 0.001 {
		t.Errorf("ComputeModifierStack() = %v, want 1.0", got)
	}
	if len(ws) != 0 {
		t.Errorf("warnings = %v, want none (default row found)", ws)
	}
}

func TestComputeModifierStack_MissingTierWarnsPerCategory(t *testing.T) {
	tables := testTables(t)
	area := AreaInput{Era: "modern", Occupied: "vacant", RoomDensity: 2, Scope: ScopeFull}

	var ws warnings
	got := ComputeModifierStack(area, "X9", tables, &ws)

	if math.Abs(got-1.0) > 0.001 {
		t.Errorf("ComputeModifierStack() = %v, want 1.0 fallback", got)
	}
	// One miss per category: era, occupied, noPowerHeat, hazardous,
	// density, scanScope.
	if len(ws) != 6 {
		t.Errorf("len(warnings) = %d, want 6: %v", len(ws), ws)
	}
	for _, w := range ws {
		if w.Table != "modifiers" {
			t.Errorf("warning table = %q, want modifiers", w.Table)
		}
		if w.Fallback != 1.0 {
			t.Errorf("warning fallback = %v, want 1.0", w.Fallback)
		}
	}
}
