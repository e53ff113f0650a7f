package services

import (
	"testing"

	"scanquote/rates"
)

func TestResolveTier(t *testing.T) {
	tables := testTables(t)

	eligible := func(sqft float64) AreaInput {
		a := commercialArea(sqft)
		return a
	}
	ineligible := func(sqft float64) AreaInput {
		a := commercialArea(sqft)
		a.BuildingType = "healthcare"
		return a
	}

	tests := []struct {
		name     string
		request  string
		areas    []AreaInput
		wantTier string
	}{
		{"auto below threshold", TierRequestAuto, []AreaInput{eligible(25000)}, rates.TierX7},
		{"auto at threshold", TierRequestAuto, []AreaInput{eligible(50000)}, rates.TierSLAM},
		{"auto above threshold", TierRequestAuto, []AreaInput{eligible(55000)}, rates.TierSLAM},
		{"auto sums across areas", TierRequestAuto, []AreaInput{eligible(30000), eligible(25000)}, rates.TierSLAM},
		{"auto large but ineligible type", TierRequestAuto, []AreaInput{ineligible(120000)}, rates.TierX7},
		{"auto one ineligible area spoils", TierRequestAuto, []AreaInput{eligible(60000), ineligible(10000)}, rates.TierX7},
		{"explicit slam ignores threshold", TierRequestSLAM, []AreaInput{eligible(5000)}, rates.TierSLAM},
		{"explicit slam falls back when ineligible", TierRequestSLAM, []AreaInput{ineligible(120000)}, rates.TierX7},
		{"explicit x7 stays x7", TierRequestX7, []AreaInput{eligible(200000)}, rates.TierX7},
		{"empty request defaults x7", "", []AreaInput{eligible(200000)}, rates.TierX7},
		{"no areas never slam", TierRequestSLAM, nil, rates.TierX7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &ScopingForm{ScanTierRequest: tt.request, Areas: tt.areas}
			tier, _ := ResolveTier(form, tables)
			if tier != tt.wantTier {
				t.Errorf("ResolveTier() tier = %q, want %q", tier, tt.wantTier)
			}
		})
	}
}

func TestResolveTierBIMManager(t *testing.T) {
	tables := testTables(t)

	tests := []struct {
		name    string
		request string
		bim     string
		areas   []AreaInput
		want    bool
	}{
		{"on forces active", TierRequestX7, BIMManagerOn, []AreaInput{commercialArea(5000)}, true},
		{"off stays inactive under slam", TierRequestSLAM, BIMManagerOff, []AreaInput{commercialArea(120000)}, false},
		{"auto inactive under x7", TierRequestX7, BIMManagerAuto, []AreaInput{commercialArea(120000)}, false},
		{"auto active under slam", TierRequestSLAM, BIMManagerAuto, []AreaInput{commercialArea(120000)}, true},
		{"empty request inactive", TierRequestSLAM, "", []AreaInput{commercialArea(120000)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := &ScopingForm{ScanTierRequest: tt.request, BIMManager: tt.bim, Areas: tt.areas}
			_, bimManager := ResolveTier(form, tables)
			if bimManager != tt.want {
				t.Errorf("ResolveTier() bimManager = %v, want %v", bimManager, tt.want)
			}
		})
	}
}
