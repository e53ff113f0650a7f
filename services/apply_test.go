package services

import (
	"math"
	"testing"
)

func TestApplyQuoteToShells_PricesEngineDisciplines(t *testing.T) {
	area := commercialArea(25000)
	area.Structure = true
	form := quoteForm(area)

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	shells = ApplyQuoteToShells(shells, quote, ids)

	ar := quote.Areas[0]
	for _, s := range shells {
		switch s.Discipline {
		case DisciplineArch:
			assertAmounts(t, s, ar.ArchCost, ar.ArchPrice)
		case DisciplineStructure:
			assertAmounts(t, s, ar.StructureCost, ar.StructurePrice)
		case DisciplineTravel:
			assertAmounts(t, s, quote.TravelCost, quote.TravelPrice)
		}
	}
}

func TestApplyQuoteToShells_ManualLinesUntouched(t *testing.T) {
	area := commercialArea(25000)
	area.ACT = true
	area.BelowFloor = true
	form := quoteForm(area)
	form.Landscape = "Basic"
	form.ScanRegOnly = "raw"
	form.CustomItems = []CustomItem{{Description: "Drone photography", Amount: 1200}}

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	shells = ApplyQuoteToShells(shells, quote, ids)

	for _, s := range shells {
		switch s.Discipline {
		case DisciplineACT, DisciplineBelowFloor, DisciplineLandscape, DisciplineScanRegOnly:
			if s.UpteamCost != nil || s.ClientPrice != nil {
				t.Errorf("%s shell was priced by apply; it must stay manual", s.Discipline)
			}
		case DisciplineCustom:
			if s.ClientPrice == nil || *s.ClientPrice != 1200 {
				t.Errorf("custom shell price = %v, want the form amount 1200 preserved", s.ClientPrice)
			}
		}
	}
}

func TestApplyQuoteToShells_AppendsFloorAdjustment(t *testing.T) {
	form := quoteForm(commercialArea(25000))

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}
	if quote.FloorAdjustment <= 0 {
		t.Fatalf("FloorAdjustment = %v, scenario should trip the margin floor", quote.FloorAdjustment)
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	before := len(shells)
	shells = ApplyQuoteToShells(shells, quote, ids)

	if len(shells) != before+1 {
		t.Fatalf("len(shells) = %d, want %d (one appended floor line)", len(shells), before+1)
	}
	last := shells[len(shells)-1]
	if last.Discipline != DisciplineFloorAdjust {
		t.Fatalf("appended discipline = %s, want %s", last.Discipline, DisciplineFloorAdjust)
	}
	if last.UpteamCost == nil || *last.UpteamCost != 0 {
		t.Errorf("floor line UpteamCost = %v, want explicit 0", last.UpteamCost)
	}
	if last.ClientPrice == nil || math.Abs(*last.ClientPrice-quote.FloorAdjustment) > 0.001 {
		t.Errorf("floor line ClientPrice = %v, want %v", last.ClientPrice, quote.FloorAdjustment)
	}
	if last.ID == "" {
		t.Error("appended line has no ID")
	}
}

func TestApplyQuoteToShells_AppendsMinimumAdjustment(t *testing.T) {
	area := commercialArea(500)
	area.LOD = "200"
	area.RoomDensity = 1
	form := quoteForm(area)
	form.Travel = TravelPlan{}

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}
	if !quote.MinimumEnforced {
		t.Fatalf("MinimumEnforced = false, tiny project should hit the minimum")
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	shells = ApplyQuoteToShells(shells, quote, ids)

	last := shells[len(shells)-1]
	if last.Discipline != DisciplineMinimum {
		t.Fatalf("last discipline = %s, want %s", last.Discipline, DisciplineMinimum)
	}
	if last.ClientPrice == nil || math.Abs(*last.ClientPrice-quote.MinimumApplied) > 0.001 {
		t.Errorf("minimum line ClientPrice = %v, want %v", last.ClientPrice, quote.MinimumApplied)
	}
}

func TestApplyQuoteToShells_NoAdjustmentLinesWhenClean(t *testing.T) {
	area := commercialArea(25000)
	form := quoteForm(area)
	form.BIMManager = BIMManagerOn

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}
	// BIM manager active: cost ratios sum to exactly the margin floor, so
	// no adjustment accrues.
	if quote.FloorAdjustment != 0 {
		t.Fatalf("FloorAdjustment = %v, want 0 with BIM manager on", quote.FloorAdjustment)
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	before := len(shells)
	shells = ApplyQuoteToShells(shells, quote, ids)

	if len(shells) != before {
		t.Errorf("len(shells) = %d, want %d (no adjustment lines)", len(shells), before)
	}
	for _, s := range shells {
		if s.Discipline == DisciplineFloorAdjust || s.Discipline == DisciplineMinimum {
			t.Errorf("unexpected %s line", s.Discipline)
		}
	}
}

func TestApplyQuoteToShells_ExpeditedHasZeroCostBasis(t *testing.T) {
	form := quoteForm(commercialArea(25000))
	form.Expedited = true

	quote, err := ComputeProjectQuote(form, testTables(t))
	if err != nil {
		t.Fatalf("ComputeProjectQuote() error = %v", err)
	}

	ids := &SequenceIDs{Prefix: "L"}
	shells := GenerateLineItemShells(form, ids)
	shells = ApplyQuoteToShells(shells, quote, ids)

	for _, s := range shells {
		if s.Discipline != DisciplineExpedited {
			continue
		}
		if s.UpteamCost == nil || *s.UpteamCost != 0 {
			t.Errorf("expedited UpteamCost = %v, want explicit 0 (pure surcharge)", s.UpteamCost)
		}
		if s.ClientPrice == nil || math.Abs(*s.ClientPrice-quote.ExpeditedSurcharge) > 0.001 {
			t.Errorf("expedited ClientPrice = %v, want %v", s.ClientPrice, quote.ExpeditedSurcharge)
		}
	}
}

func assertAmounts(t *testing.T, s LineItemShell, cost, price float64) {
	t.Helper()
	if s.UpteamCost == nil || math.Abs(*s.UpteamCost-cost) > 0.001 {
		t.Errorf("%s UpteamCost = %v, want %v", s.Discipline, s.UpteamCost, cost)
	}
	if s.ClientPrice == nil || math.Abs(*s.ClientPrice-price) > 0.001 {
		t.Errorf("%s ClientPrice = %v, want %v", s.Discipline, s.ClientPrice, price)
	}
}
