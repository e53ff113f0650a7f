// Package services implements the quote computation pipeline: line-item
// shell generation, rate-table-driven pricing, quote totals with margin
// integrity, and the stage-to-stage prefill cascade. Everything here is a
// pure, synchronous transformation; callers load rate tables and stage
// data beforehand and persist results afterwards.
package services

import (
	"fmt"

	"scanquote/rates"
)

// AreaResult is the per-area pricing breakdown. Immutable once computed.
type AreaResult struct {
	Name         string  `json:"name"`
	BuildingType string  `json:"building_type"`
	SquareFeet   float64 `json:"square_feet"`
	Band         string  `json:"band"`
	MegaBand     string  `json:"mega_band,omitempty"` // set under SLAM
	Scope        string  `json:"scope"`
	LOD          string  `json:"lod"`

	ArchUppT        float64 `json:"arch_uppt"`
	ScanBasePerSqft float64 `json:"scan_base_per_sqft"`
	SeniorityFactor float64 `json:"seniority_factor"`
	ModifierStack   float64 `json:"modifier_stack"`
	ScanPerSqft     float64 `json:"scan_per_sqft"`
	CostPerSqft     float64 `json:"cost_per_sqft"`

	ArchCost  float64 `json:"arch_cost"`
	ArchPrice float64 `json:"arch_price"`

	StructureCost  float64 `json:"structure_cost"`
	StructurePrice float64 `json:"structure_price"`
	MEPFCost       float64 `json:"mepf_cost"`
	MEPFPrice      float64 `json:"mepf_price"`
	GradeCost      float64 `json:"grade_cost"`
	GradePrice     float64 `json:"grade_price"`

	CADCost  float64 `json:"cad_cost"`
	CADPrice float64 `json:"cad_price"`

	MatterportCost  float64 `json:"matterport_cost"`
	MatterportPrice float64 `json:"matterport_price"`

	TotalCost  float64 `json:"total_cost"`
	TotalPrice float64 `json:"total_price"`
}

// QuoteResult is the full quote breakdown for a scoping form.
type QuoteResult struct {
	UPID             string              `json:"upid"`
	Tier             string              `json:"tier"`
	BIMManagerActive bool                `json:"bim_manager_active"`
	Multiplier       MultiplierBreakdown `json:"multiplier"`

	Areas          []AreaResult `json:"areas"`
	AreaCostTotal  float64      `json:"area_cost_total"`
	AreaPriceTotal float64      `json:"area_price_total"`

	GeoreferencingCost  float64 `json:"georeferencing_cost"`
	GeoreferencingPrice float64 `json:"georeferencing_price"`

	TravelMode  string  `json:"travel_mode"`
	TravelCost  float64 `json:"travel_cost"`
	TravelPrice float64 `json:"travel_price"`

	ExpeditedSurcharge float64 `json:"expedited_surcharge"`

	// Subtotal is the quote before floor and minimum enforcement.
	Subtotal        float64 `json:"subtotal"`
	FloorAdjustment float64 `json:"floor_adjustment"`
	MinimumApplied  float64 `json:"minimum_applied"`
	MinimumEnforced bool    `json:"minimum_enforced"`
	Total           float64 `json:"total"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// ComputeProjectQuote prices a scoping form against a rate-table snapshot.
// The computation is deterministic: same form and tables, same quote.
//
// Missing rate rows never abort the quote; they resolve to 0 (additive
// rates) or 1.0 (factors) and are reported in Warnings. An invalid
// multiplier configuration aborts with a *rates.ConfigError.
func ComputeProjectQuote(form *ScopingForm, t *rates.Tables) (*QuoteResult, error) {
	if t == nil {
		return nil, fmt.Errorf("rate tables are required")
	}

	tier, bimManager := ResolveTier(form, t)
	mult, err := ComputeMultiplier(t.Constants, bimManager)
	if err != nil {
		return nil, err
	}

	var ws warnings

	// SLAM prices scanning off the project-wide mega-band.
	megaBand := ""
	if tier == rates.TierSLAM {
		megaBand = t.MegaBandFor(form.TotalSquareFeet())
	}

	result := &QuoteResult{
		UPID:             form.UPID,
		Tier:             tier,
		BIMManagerActive: bimManager,
		Multiplier:       mult,
	}

	for _, area := range form.Areas {
		ar := priceArea(area, form, tier, megaBand, mult, t, &ws)
		result.Areas = append(result.Areas, ar)
		result.AreaCostTotal += ar.TotalCost
		result.AreaPriceTotal += ar.TotalPrice
	}

	result.GeoreferencingCost, result.GeoreferencingPrice = priceGeoreferencing(form, t)

	result.TravelCost, result.TravelMode = ComputeTravelCost(form.Travel, form.CrewSize(t), t.Travel)
	result.TravelPrice = result.TravelCost * mult.M

	if form.Expedited {
		result.ExpeditedSurcharge = t.Constants.ExpeditedRate * (result.AreaPriceTotal + result.TravelPrice)
	}

	result.Subtotal = result.AreaPriceTotal + result.GeoreferencingPrice + result.TravelPrice + result.ExpeditedSurcharge

	// Floor enforcement. The cost basis is reverse-derived from the
	// marked-up subtotal with one division by M, then the floor total
	// re-applies the margin-floor denominator. The two denominators
	// differ on purpose; the sequence is load-bearing and pinned by a
	// regression test.
	impliedCost := result.Subtotal / mult.M
	floorTotal := impliedCost / (1 - t.Constants.MarginFloor)
	if floorTotal > result.Subtotal {
		result.FloorAdjustment = floorTotal - result.Subtotal
	}
	result.Total = result.Subtotal + result.FloorAdjustment

	// Minimum enforcement runs last, over all other charges.
	minimum := t.Constants.BaseMinimum
	if form.HasAddOns() {
		minimum = t.Constants.AddOnMinimum
	}
	if result.Total < minimum {
		result.MinimumApplied = minimum - result.Total
		result.MinimumEnforced = true
		result.Total = minimum
	}

	result.Warnings = ws
	return result, nil
}

// priceArea computes one area's breakdown.
func priceArea(area AreaInput, form *ScopingForm, tier, megaBand string, mult MultiplierBreakdown, t *rates.Tables, ws *warnings) AreaResult {
	band := t.BandFor(area.SquareFootage)
	lod := effectiveLOD(area)

	ar := AreaResult{
		Name:         area.Name,
		BuildingType: area.BuildingType,
		SquareFeet:   area.SquareFootage,
		Band:         band,
		MegaBand:     megaBand,
		Scope:        area.Scope,
		LOD:          lod,
	}

	// Architecture: UppT plus the adjusted scan cost, marked up by M.
	ar.ArchUppT = archUppT(area, band, lod, t, ws)
	ar.ScanBasePerSqft = scanBase(area.BuildingType, band, tier, megaBand, t, ws)
	ar.SeniorityFactor = seniorityFactor(area.ScannerSeniority, t, ws)
	ar.ModifierStack = ComputeModifierStack(area, tier, t, ws)
	ar.ScanPerSqft = ar.ScanBasePerSqft * ar.SeniorityFactor * ar.ModifierStack
	ar.CostPerSqft = ar.ArchUppT + ar.ScanPerSqft
	ar.ArchCost = ar.CostPerSqft * area.SquareFootage
	ar.ArchPrice = ar.ArchCost * mult.M

	// Add-on disciplines: per-discipline UppT with band markup and scope
	// discount (grade is deliberately exempt from the discount).
	if area.Structure {
		sqft := disciplineSqft(area.StructureSqft, area.SquareFootage)
		ar.StructureCost, ar.StructurePrice = priceAddOn("structure", area, sqft, band, lod, t, ws)
	}
	if area.MEPF {
		sqft := disciplineSqft(area.MEPFSqft, area.SquareFootage)
		ar.MEPFCost, ar.MEPFPrice = priceAddOn("mepf", area, sqft, band, lod, t, ws)
	}
	if area.Grade {
		sqft := disciplineSqft(area.GradeSqft, area.SquareFootage)
		ar.GradeCost, ar.GradePrice = priceAddOn("grade", area, sqft, band, lod, t, ws)
	}

	if form.WantsCAD() {
		ar.CADCost, ar.CADPrice = priceCAD(area, band, form.CADPackage, t, ws)
	}

	if area.Matterport {
		ar.MatterportCost = t.FlatRates.MatterportCostPerSqft * area.SquareFootage
		ar.MatterportPrice = t.FlatRates.MatterportPricePerSqft * area.SquareFootage
	}

	ar.TotalCost = ar.ArchCost + ar.StructureCost + ar.MEPFCost + ar.GradeCost + ar.CADCost + ar.MatterportCost
	ar.TotalPrice = ar.ArchPrice + ar.StructurePrice + ar.MEPFPrice + ar.GradePrice + ar.CADPrice + ar.MatterportPrice
	return ar
}

// archUppT resolves the architecture rate, blending interior and exterior
// LODs for Mixed scope areas.
func archUppT(area AreaInput, band, lod string, t *rates.Tables, ws *warnings) float64 {
	lookup := func(l string) float64 {
		v, ok := t.ArchRate(area.BuildingType, band, l)
		if !ok {
			return ws.miss("arch_rates", area.BuildingType+"/"+band+"/"+l, 0)
		}
		return v
	}

	if area.Scope != ScopeMixed {
		return lookup(lod)
	}

	intLOD, extLOD := area.InteriorLOD, area.ExteriorLOD
	if intLOD == "" {
		intLOD = lod
	}
	if extLOD == "" {
		extLOD = lod
	}
	w := t.Constants.MixedInteriorWeight
	return w*lookup(intLOD) + (1-w)*lookup(extLOD)
}

// scanBase returns the pre-adjustment scanning cost per square foot. X7
// prices off per-band baselines, SLAM off a fixed per-mega-band baseline;
// both scale by the building type's throughput ratio.
func scanBase(buildingType, band, tier, megaBand string, t *rates.Tables, ws *warnings) float64 {
	var baseline float64
	if tier == rates.TierSLAM {
		v, ok := t.SLAMBaseline(megaBand)
		if !ok {
			v = ws.miss("slam_baselines", megaBand, 0)
		}
		baseline = v
	} else {
		v, ok := t.ScanBaseline(band)
		if !ok {
			v = ws.miss("scan_baselines", band, 0)
		}
		baseline = v
	}

	ratio, ok := t.TypeRatio(buildingType, tier)
	if !ok {
		ratio = ws.miss("building_types", buildingType+"/"+tier, 1.0)
	}
	return baseline * ratio
}

// seniorityFactor resolves the scanner factor; an unset assignment prices
// as the standard level.
func seniorityFactor(level string, t *rates.Tables, ws *warnings) float64 {
	if level == "" {
		level = "standard"
	}
	v, ok := t.SeniorityFactor(level)
	if !ok {
		return ws.miss("seniority_factors", level, 1.0)
	}
	return v
}

func priceAddOn(discipline string, area AreaInput, sqft float64, band, lod string, t *rates.Tables, ws *warnings) (cost, price float64) {
	uppt, ok := t.AddOnRate(discipline, area.BuildingType, band, lod)
	if !ok {
		uppt = ws.miss("addon_rates", discipline+"/"+area.BuildingType+"/"+band+"/"+lod, 0)
	}
	markup, ok := t.BandMarkup(discipline, band)
	if !ok {
		markup = ws.miss("band_markups", discipline+"/"+band, 1.0)
	}

	discount := 1.0
	if discipline != "grade" {
		d, ok := t.ScopeDiscount(area.Scope)
		if !ok {
			d = ws.miss("scope_discounts", area.Scope, 1.0)
		}
		discount = d
	}

	cost = uppt * sqft
	price = cost * markup * discount
	return cost, price
}

func priceCAD(area AreaInput, band, pkg string, t *rates.Tables, ws *warnings) (cost, price float64) {
	uppt, ok := t.CADRate(band, pkg)
	if !ok {
		uppt = ws.miss("cad_rates", band+"/"+pkg, 0)
	}
	markup, ok := t.CADMarkup(band, pkg)
	if !ok {
		markup = ws.miss("cad_markups", band+"/"+pkg, 1.0)
	}
	cost = uppt * area.SquareFootage
	price = cost * markup
	return cost, price
}

// priceGeoreferencing charges the flat fee per toggled area. With the
// project flag on but no per-area toggles, one fee still applies (the
// project control network is set up at least once).
func priceGeoreferencing(form *ScopingForm, t *rates.Tables) (cost, price float64) {
	if !form.Georeferencing {
		return 0, 0
	}
	count := 0
	for _, a := range form.Areas {
		if a.Georeferencing {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return float64(count) * t.FlatRates.GeoreferencingCost, float64(count) * t.FlatRates.GeoreferencingFee
}

// effectiveLOD picks the LOD used for rate lookups when the area splits
// interior and exterior levels.
func effectiveLOD(area AreaInput) string {
	if area.LOD != "" {
		return area.LOD
	}
	if area.InteriorLOD != "" {
		return area.InteriorLOD
	}
	return area.ExteriorLOD
}
