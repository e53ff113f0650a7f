package rates

import "math"

// Compiled-in default snapshot. These are the standing book rates; deployed
// environments overlay client-specific numbers via the YAML file and env
// vars (see loader.go).

// ── Definition tables ────────────────────────────────────────────────────

var defaultBands = []BandDef{
	{Key: "0-5k", MinSqft: 0, MaxSqft: 5000},
	{Key: "5k-15k", MinSqft: 5000, MaxSqft: 15000},
	{Key: "15k-50k", MinSqft: 15000, MaxSqft: 50000},
	{Key: "50k-100k", MinSqft: 50000, MaxSqft: 0},
}

var defaultMegaBands = []BandDef{
	{Key: "100k-250k", MinSqft: 100000, MaxSqft: 250000},
	{Key: "250k+", MinSqft: 250000, MaxSqft: 0},
}

// bandFactor scales the 15k-50k base rate into the other brackets; smaller
// jobs carry proportionally more setup overhead per square foot.
var bandFactor = map[string]float64{
	"0-5k":     1.25,
	"5k-15k":   1.10,
	"15k-50k":  1.00,
	"50k-100k": 0.90,
}

// archBase is the architecture UppT ($/sqft) at the 15k-50k band, by
// building type and LOD.
var archBase = map[string]map[string]float64{
	"commercial":  {"200": 0.09, "300": 0.14, "350": 0.19},
	"industrial":  {"200": 0.08, "300": 0.12, "350": 0.16},
	"warehouse":   {"200": 0.05, "300": 0.08, "350": 0.11},
	"residential": {"200": 0.11, "300": 0.17, "350": 0.23},
	"healthcare":  {"200": 0.13, "300": 0.20, "350": 0.27},
	"education":   {"200": 0.10, "300": 0.15, "350": 0.20},
	"hospitality": {"200": 0.12, "300": 0.18, "350": 0.24},
	"civic":       {"200": 0.10, "300": 0.16, "350": 0.21},
}

// addOnShare derives each add-on discipline's UppT from the architecture
// base for the same type/band/LOD.
var addOnShare = map[string]float64{
	"structure": 0.55,
	"mepf":      0.70,
	"grade":     0.30,
}

var defaultBuildingTypes = []BuildingTypeDef{
	{Key: "commercial", X7Ratio: 1.00, SLAMRatio: 1.00, SLAMEligible: true},
	{Key: "industrial", X7Ratio: 0.90, SLAMRatio: 0.85, SLAMEligible: true},
	{Key: "warehouse", X7Ratio: 0.75, SLAMRatio: 0.70, SLAMEligible: true},
	{Key: "residential", X7Ratio: 1.15, SLAMRatio: 0, SLAMEligible: false},
	{Key: "healthcare", X7Ratio: 1.30, SLAMRatio: 0, SLAMEligible: false},
	{Key: "education", X7Ratio: 1.10, SLAMRatio: 1.05, SLAMEligible: true},
	{Key: "hospitality", X7Ratio: 1.20, SLAMRatio: 0, SLAMEligible: false},
	{Key: "civic", X7Ratio: 1.05, SLAMRatio: 1.00, SLAMEligible: true},
}

var defaultScanBaselines = []ScanBaseline{
	{Band: "0-5k", CostPerSqf: 0.140},
	{Band: "5k-15k", CostPerSqf: 0.110},
	{Band: "15k-50k", CostPerSqf: 0.085},
	{Band: "50k-100k", CostPerSqf: 0.070},
}

var defaultSLAMBaselines = []SLAMBaseline{
	{MegaBand: "100k-250k", CostPerSqf: 0.035},
	{MegaBand: "250k+", CostPerSqf: 0.028},
}

var defaultSeniorityFactors = []SeniorityFactor{
	{Level: "junior", Factor: 1.15},
	{Level: "standard", Factor: 1.00},
	{Level: "senior", Factor: 0.90},
	{Level: "lead", Factor: 0.85},
}

// addOnMarkup is the add-on price markup per discipline and band.
var addOnMarkup = map[string]map[string]float64{
	"structure": {"0-5k": 1.45, "5k-15k": 1.40, "15k-50k": 1.35, "50k-100k": 1.30},
	"mepf":      {"0-5k": 1.50, "5k-15k": 1.45, "15k-50k": 1.40, "50k-100k": 1.35},
	"grade":     {"0-5k": 1.30, "5k-15k": 1.28, "15k-50k": 1.25, "50k-100k": 1.22},
}

var defaultScopeDiscounts = []ScopeDiscount{
	{Scope: "Full", Discount: 1.00},
	{Scope: "Int Only", Discount: 0.92},
	{Scope: "Ext Only", Discount: 0.85},
	{Scope: "Mixed", Discount: 0.95},
}

// cadBase is the CAD conversion UppT ($/sqft) by band and package.
var cadBase = map[string]map[string]float64{
	"0-5k":     {"full": 0.060, "arch-only": 0.040, "shell": 0.025},
	"5k-15k":   {"full": 0.050, "arch-only": 0.034, "shell": 0.021},
	"15k-50k":  {"full": 0.042, "arch-only": 0.028, "shell": 0.018},
	"50k-100k": {"full": 0.036, "arch-only": 0.024, "shell": 0.015},
}

var cadMarkupTable = map[string]map[string]float64{
	"0-5k":     {"full": 1.50, "arch-only": 1.45, "shell": 1.40},
	"5k-15k":   {"full": 1.45, "arch-only": 1.42, "shell": 1.38},
	"15k-50k":  {"full": 1.42, "arch-only": 1.40, "shell": 1.36},
	"50k-100k": {"full": 1.40, "arch-only": 1.38, "shell": 1.34},
}

// modifierDef seeds one category across both tiers.
type modifierDef struct {
	category string
	code     string
	x7       float64
	slam     float64
}

var defaultModifierDefs = []modifierDef{
	{"era", "pre1940", 1.12, 1.15},
	{"era", "1940-1990", 1.05, 1.06},
	{"era", "modern", 1.00, 1.00},
	{"era", "default", 1.00, 1.00},

	{"occupied", "vacant", 1.00, 1.00},
	{"occupied", "partial", 1.06, 1.08},
	{"occupied", "full", 1.12, 1.15},
	{"occupied", "default", 1.00, 1.00},

	{"noPowerHeat", "yes", 1.08, 1.10},
	{"noPowerHeat", "default", 1.00, 1.00},

	{"hazardous", "yes", 1.20, 1.25},
	{"hazardous", "default", 1.00, 1.00},

	{"density", "1", 0.94, 0.92},
	{"density", "2", 1.00, 1.00},
	{"density", "3", 1.06, 1.08},
	{"density", "4", 1.14, 1.18},
	{"density", "5", 1.24, 1.30},
	{"density", "default", 1.00, 1.00},

	{"scanScope", "Full", 1.00, 1.00},
	{"scanScope", "Int Only", 0.97, 0.97},
	{"scanScope", "Ext Only", 0.90, 0.90},
	{"scanScope", "Mixed", 1.00, 1.00},
	{"scanScope", "default", 1.00, 1.00},
}

// ── Snapshot assembly ────────────────────────────────────────────────────

// DefaultConfig returns the compiled-in rate configuration.
func DefaultConfig() Config {
	cfg := Config{
		Constants: Constants{
			QC:           0.05,
			PM:           0.06,
			COO:          0.04,
			Registration: 0.07,
			BIMManager:   0.03,

			Tax:            0.03,
			OwnerComp:      0.05,
			SalesMarketing: 0.04,
			Overhead:       0.06,
			BadDebt:        0.02,

			SavingsFloor: 0.10,
			MarginFloor:  0.55,

			SLAMAutoThreshold:   50000,
			MixedInteriorWeight: 0.65,
			ExpeditedRate:       0.15,
			BaseMinimum:         3500,
			AddOnMinimum:        5000,
			ScansPerDay:         30,
			DefaultCrewSize:     2,
		},
		Bands:            defaultBands,
		MegaBands:        defaultMegaBands,
		BuildingTypes:    defaultBuildingTypes,
		ScanBaselines:    defaultScanBaselines,
		SLAMBaselines:    defaultSLAMBaselines,
		SeniorityFactors: defaultSeniorityFactors,
		ScopeDiscounts:   defaultScopeDiscounts,
		Travel: Travel{
			ShortMaxMiles: 60,
			MidMaxMiles:   250,
			ShortFlat: []TripFlat{
				{MaxDays: 1, Amount: 250},
				{MaxDays: 2, Amount: 400},
				{MaxDays: 3, Amount: 600},
			},
			MileageRate:       0.67,
			OvernightTripDays: 3,
			HotelNightly:      140,
			PerDiemDaily:      60,
			AirfarePerTech:    450,
			CarRentalDaily:    65,
			ParkingDaily:      25,
		},
		FlatRates: FlatRates{
			MatterportCostPerSqft:  0.020,
			MatterportPricePerSqft: 0.060,
			GeoreferencingCost:     150,
			GeoreferencingFee:      400,
		},
	}

	for buildingType, byLOD := range archBase {
		for lod, base := range byLOD {
			for band, factor := range bandFactor {
				cfg.ArchRates = append(cfg.ArchRates, ArchRate{
					BuildingType: buildingType,
					Band:         band,
					LOD:          lod,
					UppT:         round4(base * factor),
				})
				for discipline, share := range addOnShare {
					cfg.AddOnRates = append(cfg.AddOnRates, AddOnRate{
						Discipline:   discipline,
						BuildingType: buildingType,
						Band:         band,
						LOD:          lod,
						UppT:         round4(base * factor * share),
					})
				}
			}
		}
	}

	for discipline, byBand := range addOnMarkup {
		for band, markup := range byBand {
			cfg.BandMarkups = append(cfg.BandMarkups, BandMarkup{
				Discipline: discipline,
				Band:       band,
				Markup:     markup,
			})
		}
	}

	for band, byPkg := range cadBase {
		for pkg, uppt := range byPkg {
			cfg.CADRates = append(cfg.CADRates, CADRate{Band: band, Package: pkg, UppT: uppt})
		}
	}
	for band, byPkg := range cadMarkupTable {
		for pkg, markup := range byPkg {
			cfg.CADMarkups = append(cfg.CADMarkups, CADMarkup{Band: band, Package: pkg, Markup: markup})
		}
	}

	for _, def := range defaultModifierDefs {
		cfg.Modifiers = append(cfg.Modifiers,
			Modifier{Tier: TierX7, Category: def.category, Code: def.code, Factor: def.x7},
			Modifier{Tier: TierSLAM, Category: def.category, Code: def.code, Factor: def.slam},
		)
	}

	return cfg
}

// Default builds the compiled-in snapshot. It panics on error: the default
// configuration is covered by tests and must always validate.
func Default() *Tables {
	t, err := Build(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return t
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
